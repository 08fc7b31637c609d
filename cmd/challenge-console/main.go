package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/nudj-platform/challenge-console/internal/catalog"
	"github.com/nudj-platform/challenge-console/internal/config"
	"github.com/nudj-platform/challenge-console/internal/editor"
	"github.com/nudj-platform/challenge-console/internal/listing"
	"github.com/nudj-platform/challenge-console/internal/models"
	"github.com/nudj-platform/challenge-console/pkg/client"
)

const usage = `Usage: challenge-console <command> [flags]

Commands:
  challenges    list challenges for a community
  show          show a challenge with its questions and rewards
  communities   list communities
  catalog       list the action templates available in the picker
`

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.NewClient(cfg.API.BaseURL, cfg.API.Token, client.WithTimeout(cfg.API.Timeout))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "challenges":
		err = runChallenges(ctx, api, os.Args[2:])
	case "show":
		err = runShow(ctx, api, os.Args[2:])
	case "communities":
		err = runCommunities(ctx, api, os.Args[2:])
	case "catalog":
		err = runCatalog(cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runChallenges(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("challenges", flag.ExitOnError)
	community := fs.String("community", "", "community id (required)")
	page := fs.Int("page", 0, "0-based page index")
	size := fs.Int("size", listing.DefaultPageSize, "page size")
	search := fs.String("search", "", "title search term")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *community == "" {
		return fmt.Errorf("-community is required")
	}

	view := listing.NewListView(api, *community)
	if err := view.SetPageSize(*size); err != nil {
		return err
	}
	view.SetSearch(*search)

	if err := view.Load(ctx); err != nil {
		return err
	}
	// Paging bounds come from the first load; walk forward to the
	// requested page and refetch.
	if *page > 0 {
		moved := false
		for i := 0; i < *page && view.Next(); i++ {
			moved = true
		}
		if moved {
			if err := view.Load(ctx); err != nil {
				return err
			}
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCREATED")
	for _, c := range view.Challenges() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Details.Title, c.Status, c.CreatedAt.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println(view.Summary())
	return nil
}

func runShow(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	community := fs.String("community", "", "community id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *community == "" {
		return fmt.Errorf("-community is required")
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: show -community <id> <challenge-id>")
	}

	session := editor.NewEditSession(api, editor.Scope{CommunityID: *community})
	if err := session.Load(ctx, fs.Arg(0)); err != nil {
		return err
	}

	challenge := session.Challenge()
	fmt.Printf("%s (%s)\n", challenge.Details.Title, challenge.Status)
	if challenge.Details.Subtitle != "" {
		fmt.Println(challenge.Details.Subtitle)
	}
	fmt.Println()

	questions, err := session.Questions()
	if err != nil {
		return err
	}
	if err := questions.Load(ctx); err != nil {
		return err
	}
	fmt.Printf("Questions (%d):\n", questions.Len())
	for _, q := range questions.Questions() {
		fmt.Printf("  %d. %s\n", q.LocalID, q.Text)
		for _, a := range q.Answers {
			marker := " "
			if a.Correct {
				marker = "*"
			}
			fmt.Printf("     [%s] %s\n", marker, a.Text)
		}
	}
	fmt.Println()

	rewards, err := session.Rewards()
	if err != nil {
		return err
	}
	if err := rewards.Load(ctx); err != nil {
		return err
	}
	fmt.Printf("Rewards (%d selected, %d total to distribute):\n", len(rewards.Selected()), rewards.TotalAmount())
	for _, row := range rewards.Selected() {
		fmt.Printf("  %s: %d (distributed %d of %d)\n", row.Name, row.Amount, row.Distributed, row.Supply)
	}
	fmt.Printf("Bonus XP: %d, Points: %d\n", rewards.BonusXP(), rewards.Points())
	return nil
}

func runCommunities(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("communities", flag.ExitOnError)
	limit := fs.Int("limit", 100, "max communities to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := api.ListCommunities(ctx, models.CommunityListOptions{Limit: *limit})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSLUG\tVERIFIED")
	for _, c := range page.Edges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", c.ID, c.Name, c.Slug, c.Verified)
	}
	return w.Flush()
}

func runCatalog(cfg *config.Config) error {
	loader := catalog.NewLoader()
	if cfg.Catalog.Dir != "" {
		if err := loader.LoadFromDir(cfg.Catalog.Dir); err != nil {
			return err
		}
	}

	c := loader.Catalog()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SECTION\tTITLE\tTYPE\tDESCRIPTION")
	for _, tmpl := range c.Questions {
		fmt.Fprintf(w, "question\t%s %s\t%s\t%s\n", tmpl.Icon, tmpl.Title, tmpl.Type, tmpl.Description)
	}
	for _, tmpl := range c.Interactions {
		fmt.Fprintf(w, "interaction\t%s %s\t%s\t%s\n", tmpl.Icon, tmpl.Title, tmpl.Type, tmpl.Description)
	}
	return w.Flush()
}
