package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-user-search/internal/config"
	"github.com/kurihiro0119/github-user-search/internal/debounce"
	"github.com/kurihiro0119/github-user-search/internal/domain"
	"github.com/kurihiro0119/github-user-search/internal/gh"
	"github.com/kurihiro0119/github-user-search/internal/repocache"
	"github.com/kurihiro0119/github-user-search/internal/search"
	apiclient "github.com/kurihiro0119/github-user-search/pkg/client"
)

var (
	outputJSON bool
	remote     bool
	withRepos  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ghsearch",
	Short: "GitHub user search tool",
	Long: `A CLI tool for searching GitHub users and browsing their public repositories.

Searches return the first page of matching users. Repository lists are
fetched lazily per user and cached for the session, so repeat lookups for
the same user never re-hit the network.`,
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search GitHub users",
	Long:  `Search GitHub users by term and display the matching logins.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var reposCmd = &cobra.Command{
	Use:   "repos [login]",
	Short: "List a user's public repositories",
	Long:  `Display the public repositories of a GitHub user.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRepos,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive debounced search",
	Long: `Read search terms from standard input and run a search once the input
has been stable for the configured debounce window. An empty line clears
the current results. Exit with Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&remote, "remote", false, "query a running github-user-search server instead of GitHub directly")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	searchCmd.Flags().BoolVar(&withRepos, "repos", false, "also fetch repositories for each result")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// newSession wires a GitHub client, cache, loader and controller for
// local (non-remote) commands
func newSession(cfg *config.Config, log *logrus.Logger) (*search.Controller, *search.Loader) {
	ghClient := gh.NewClient(cfg.GitHubBaseURL(), nil)
	cache := repocache.New()
	loader := search.NewLoader(ghClient, cache, log)
	controller := search.NewController(ghClient, cache, loader, log)
	return controller, loader
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger()

	var state domain.SearchState
	var loader *search.Loader
	if remote {
		api := apiclient.NewClient(cfg.APIEndpoint)
		remoteState, err := api.Search(term)
		if err != nil {
			return fmt.Errorf("failed to search: %w", err)
		}
		state = *remoteState
	} else {
		var controller *search.Controller
		controller, loader = newSession(cfg, log)
		state = controller.SearchAndWait(context.Background(), term)
	}

	if outputJSON {
		return printJSON(state)
	}

	if state.Error != "" {
		fmt.Println(state.Error)
		return nil
	}

	fmt.Println(state.Summary())
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Login"})
	for _, u := range state.Users {
		table.Append([]string{u.Login})
	}
	table.Render()

	if withRepos && loader != nil {
		printUserRepos(loader, state.Users)
	}
	return nil
}

func printUserRepos(loader *search.Loader, users []domain.User) {
	for _, u := range users {
		fmt.Printf("\nRepositories: %s\n", u.Login)
		repos, err := loader.Load(context.Background(), u.Login)
		if err != nil {
			fmt.Println(loader.Err())
			continue
		}
		renderRepoTable(repos)
	}
}

func runRepos(cmd *cobra.Command, args []string) error {
	login := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger()

	var repos []domain.Repo
	if remote {
		api := apiclient.NewClient(cfg.APIEndpoint)
		result, err := api.GetUserRepos(login)
		if err != nil {
			return fmt.Errorf("failed to fetch repositories: %w", err)
		}
		repos = result.Repos
	} else {
		_, loader := newSession(cfg, log)
		repos, err = loader.Load(context.Background(), login)
		if err != nil {
			fmt.Println(loader.Err())
			return nil
		}
	}

	if outputJSON {
		return printJSON(repos)
	}

	fmt.Printf("Repositories: %s\n\n", login)
	renderRepoTable(repos)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger()

	controller, _ := newSession(cfg, log)
	controller.Subscribe(func(state domain.SearchState) {
		switch state.Status {
		case domain.StatusSearching:
			fmt.Printf("Searching for %q...\n", state.Query)
		case domain.StatusSuccess:
			fmt.Println(state.Summary())
			for _, u := range state.Users {
				fmt.Printf("  %s\n", u.Login)
			}
		case domain.StatusFailed:
			fmt.Println(state.Error)
		}
	})

	deb := debounce.New("", cfg.DebounceDelay)
	defer deb.Stop()
	controller.BindDebouncer(deb)

	fmt.Printf("Type a search term (debounce %s), Ctrl-D to exit.\n", cfg.DebounceDelay)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		deb.Set(scanner.Text())
	}
	return scanner.Err()
}

func renderRepoTable(repos []domain.Repo) {
	if len(repos) == 0 {
		fmt.Println(domain.NoRepositories)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Stars", "Description"})
	for _, r := range repos {
		table.Append([]string{
			r.Name,
			fmt.Sprintf("%d", r.StarCount),
			r.DisplayDescription(),
		})
	}
	table.Render()
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
