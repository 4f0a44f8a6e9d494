package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/deepresearch-cli/internal/research"
)

var (
	researchEmail     string
	researchLinkedIn  string
	researchTwitter   string
	researchInstagram string
	researchName      string
	researchCompany   string
	researchOutput    string
	researchJSON      bool
	researchLLM       string
	researchNoDossier bool
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run deep research on a single person",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		in := research.Input{
			Email:         researchEmail,
			LinkedInURL:   researchLinkedIn,
			TwitterURL:    researchTwitter,
			InstagramURL:  researchInstagram,
			Name:          researchName,
			Company:       researchCompany,
			SkipNarrative: researchNoDossier,
			Provider:      researchLLM,
		}

		p := research.New(cfg, initSource(), initSelector(ctx))

		result, err := p.Run(ctx, in)
		if err != nil {
			return eris.Wrap(err, "research run")
		}

		zap.L().Info("research complete",
			zap.String("run_id", result.RunID),
			zap.Bool("degraded", result.Degraded()),
		)

		var out []byte
		if researchJSON || result.Narrative == "" {
			out, err = json.MarshalIndent(result, "", "  ")
			if err != nil {
				return eris.Wrap(err, "encode result")
			}
		} else {
			out = []byte(result.Narrative)
		}

		if researchOutput != "" {
			if err := os.WriteFile(researchOutput, out, 0o644); err != nil {
				return eris.Wrap(err, "write output file")
			}
			fmt.Fprintln(os.Stderr, research.Summarize(result))
			return nil
		}

		fmt.Println(string(out))
		fmt.Fprintln(os.Stderr, research.Summarize(result))
		return nil
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchEmail, "email", "", "person email address")
	researchCmd.Flags().StringVar(&researchLinkedIn, "linkedin", "", "LinkedIn profile URL")
	researchCmd.Flags().StringVar(&researchTwitter, "twitter", "", "Twitter/X profile URL")
	researchCmd.Flags().StringVar(&researchInstagram, "instagram", "", "Instagram profile URL")
	researchCmd.Flags().StringVar(&researchName, "name", "", "person full name")
	researchCmd.Flags().StringVar(&researchCompany, "company", "", "person company")
	researchCmd.Flags().StringVarP(&researchOutput, "output", "o", "", "write the dossier to this file instead of stdout")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "emit the full structured result as JSON")
	researchCmd.Flags().StringVar(&researchLLM, "llm", "", "force one model provider (gemini, openai, anthropic)")
	researchCmd.Flags().BoolVar(&researchNoDossier, "no-dossier", false, "skip the narrative dossier, collect structured data only")
	rootCmd.AddCommand(researchCmd)
}
