// Command socratic is an interactive console front end for the research
// assistant: it reads a research query, asks clarifying questions on stdin,
// then prints the resulting search plan with summaries.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/smhanov/socratic"
	"github.com/smhanov/socratic/fetch"
	"github.com/smhanov/socratic/llm"
	"github.com/smhanov/socratic/search"
)

var (
	questions  int
	searches   int
	provider   string
	searchName string
	withFetch  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "socratic [query]",
	Short: "Interactive research assistant that asks before it searches",
	Long: `socratic refines a research query through a short clarifying dialogue,
then plans web searches from everything it learned and, when a search
backend is configured, executes and summarizes them.

Configuration is read from flags and environment variables:
  OPENAI_API_KEY   key for the openai provider
  TAVILY_API_KEY   key for the tavily search backend
  BRAVE_API_KEY    key for the brave search backend
  SOCRATIC_OLLAMA_ENDPOINT, SOCRATIC_OLLAMA_MODEL for the ollama provider`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	rootCmd.Flags().IntVarP(&questions, "questions", "n", 3, "clarifying questions to ask before planning")
	rootCmd.Flags().IntVarP(&searches, "searches", "k", 3, "search terms to request from the planner")
	rootCmd.Flags().StringVar(&provider, "provider", "openai", "LLM provider (openai or ollama)")
	rootCmd.Flags().StringVar(&searchName, "search", "duckduckgo", "search backend (duckduckgo, brave, tavily, or none)")
	rootCmd.Flags().BoolVar(&withFetch, "fetch", false, "fetch the top result's page text before summarizing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log prompts and responses")

	viper.SetEnvPrefix("SOCRATIC")
	viper.AutomaticEnv()
	viper.BindEnv("openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai_model", "OPENAI_MODEL")
	viper.BindEnv("tavily_api_key", "TAVILY_API_KEY")
	viper.BindEnv("brave_api_key", "BRAVE_API_KEY")
	viper.SetDefault("ollama_endpoint", "http://localhost:11434")
	viper.SetDefault("ollama_model", "llama3.1")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	model, err := buildModel()
	if err != nil {
		return err
	}
	searcher, err := buildSearcher()
	if err != nil {
		return err
	}

	opts := []socratic.Option{
		socratic.WithModel(model),
		socratic.WithQuestionBudget(questions),
		socratic.WithSearchCount(searches),
		socratic.WithLogger(logger),
	}
	if searcher != nil {
		opts = append(opts, socratic.WithSearchProvider(searcher))
	}
	if withFetch {
		opts = append(opts, socratic.WithFetchProvider(fetch.NewHTTP()))
	}
	mgr := socratic.New(opts...)

	in := bufio.NewScanner(os.Stdin)
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Print("What would you like to research? ")
		if !in.Scan() {
			return in.Err()
		}
		query = strings.TrimSpace(in.Text())
	}

	out, err := mgr.Start(cmd.Context(), query)
	for err == nil && out.Kind == socratic.OutputQuestion {
		fmt.Printf("\nQ%d: %s\n", len(mgr.Session().Turns), out.Question.Question)
		fmt.Printf("    (%s)\n> ", out.Question.Reasoning)
		if !in.Scan() {
			return in.Err()
		}
		out, err = mgr.Submit(cmd.Context(), in.Text())
	}
	if err != nil {
		return err
	}

	printResult(out)
	return nil
}

func buildModel() (socratic.LLMProvider, error) {
	switch provider {
	case "openai":
		key := viper.GetString("openai_api_key")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		return llm.NewOpenAI(key, viper.GetString("openai_model")), nil
	case "ollama":
		return llm.NewOllama(viper.GetString("ollama_endpoint"), viper.GetString("ollama_model")), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

func buildSearcher() (socratic.SearchProvider, error) {
	switch searchName {
	case "duckduckgo":
		return search.NewDuckDuckGo(), nil
	case "brave":
		key := viper.GetString("brave_api_key")
		if key == "" {
			return nil, fmt.Errorf("BRAVE_API_KEY is not set")
		}
		return search.NewBrave(key), nil
	case "tavily":
		key := viper.GetString("tavily_api_key")
		if key == "" {
			return nil, fmt.Errorf("TAVILY_API_KEY is not set")
		}
		return search.NewTavily(key, "basic"), nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown search backend: %s", searchName)
	}
}

func printResult(out socratic.Output) {
	switch out.Kind {
	case socratic.OutputPlan:
		fmt.Println("\nSearch plan:")
		for i, t := range out.Plan.Searches {
			fmt.Printf("%d. %s\n   reason: %s\n", i+1, t.Query, t.Reason)
		}
	case socratic.OutputExecutedPlan:
		fmt.Println("\nResearch results:")
		for i, t := range out.Executed.Searches {
			fmt.Printf("%d. %s\n   reason: %s\n", i+1, t.Query, t.Reason)
			if t.Failed() {
				fmt.Printf("   failed: %s\n", t.Err)
			} else {
				fmt.Printf("   %s\n", t.Summary)
			}
		}
	case socratic.OutputQuestion:
		// Unreachable: the question loop drained all questions.
	}
	if out.Cost > 0 {
		fmt.Printf("\nTotal cost: $%.4f\n", out.Cost)
	}
}
