package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	speechopenai "github.com/mindsonic-labs/mindsonic/internal/adapters/driven/speech/openai"
	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
)

var (
	flagLanguage string
	flagVoice    string
	flagOutput   string
)

var narrateCmd = &cobra.Command{
	Use:   "narrate <script-file>",
	Short: "Convert a script file to speech",
	Long: `Reads a text script and renders it as an MP3 using a text-to-speech
model. Long scripts are split into segments and the audio is joined
seamlessly. The voice is chosen by language unless --voice is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runNarrate,
}

func init() {
	narrateCmd.Flags().StringVarP(&flagLanguage, "language", "l", "english", "script language for voice selection")
	narrateCmd.Flags().StringVar(&flagVoice, "voice", "", "voice override (alloy, echo, fable, nova, onyx, shimmer)")
	narrateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output MP3 path (default: <output dir>/<script>.mp3)")
	rootCmd.AddCommand(narrateCmd)
}

func runNarrate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if settings.APIKey == "" {
		return fmt.Errorf("narrate: %w", domain.ErrMissingAPIKey)
	}

	scriptPath := args[0]
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	voice := flagVoice
	if voice == "" {
		voice = settings.TTSVoice
	}

	outputPath := flagOutput
	if outputPath == "" {
		base := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
		outputPath = filepath.Join(settings.OutputDir, base+".mp3")
	}

	synth, err := speechopenai.NewSynthesizer(speechopenai.Config{
		APIKey: settings.APIKey,
		Model:  settings.TTSModel,
	})
	if err != nil {
		return fmt.Errorf("configure speech synthesis: %w", err)
	}

	if err := synth.Synthesize(cmd.Context(), string(script), outputPath, flagLanguage, voice); err != nil {
		return fmt.Errorf("narrate: %w", err)
	}

	cmd.Printf("Audio saved to %s\n", outputPath)
	return nil
}
