package domain

import "testing"

func TestDetectFileType(t *testing.T) {
	cases := map[string]FileType{
		"knowledge/txt/notes.txt":      FileTypeText,
		"knowledge/txt/NOTES.TXT":      FileTypeText,
		"knowledge/csv/data.csv":       FileTypeCSV,
		"knowledge/docx/report.docx":   FileTypeDocx,
		"legacy.doc":                   FileTypeDocx,
		"page.html":                    FileTypeHTML,
		"page.htm":                     FileTypeHTML,
		"readme.md":                    FileTypeMarkdown,
		"readme.markdown":              FileTypeMarkdown,
		"paper.pdf":                    FileTypePDF,
		"deck.pptx":                    FileTypePptx,
		"deck.PPT":                     FileTypePptx,
		"sheet.xlsx":                   FileTypeXlsx,
		"sheet.xls":                    FileTypeXlsx,
		"binary.exe":                   FileTypeUnknown,
		"noextension":                  FileTypeUnknown,
		"knowledge/pptx/sub/deck.pptx": FileTypePptx,
	}

	for path, want := range cases {
		if got := DetectFileType(path); got != want {
			t.Errorf("DetectFileType(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestFileType_IsValid(t *testing.T) {
	for _, ft := range AllFileTypes() {
		if !ft.IsValid() {
			t.Errorf("%s should be valid", ft)
		}
	}
	if FileTypeUnknown.IsValid() {
		t.Error("unknown should not be valid")
	}
	if FileType("exe").IsValid() {
		t.Error("arbitrary type should not be valid")
	}
}

func TestAllFileTypes_Order(t *testing.T) {
	types := AllFileTypes()
	if len(types) != 8 {
		t.Fatalf("expected 8 supported types, got %d", len(types))
	}
	if types[0] != FileTypeText || types[len(types)-1] != FileTypeXlsx {
		t.Error("bucket order should be stable, text first and xlsx last")
	}
}

func TestCopyMetadata(t *testing.T) {
	t.Run("nil map", func(t *testing.T) {
		if CopyMetadata(nil) != nil {
			t.Error("nil input should return nil")
		}
	})

	t.Run("copies are independent", func(t *testing.T) {
		src := map[string]any{"source": "a.txt"}
		dst := CopyMetadata(src)
		dst["source"] = "b.txt"
		if src["source"] != "a.txt" {
			t.Error("mutating the copy changed the original")
		}
	})
}
