package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/inbox"
	"github.com/san-kum/synapse/internal/server"
)

var (
	port       string
	inboxLimit int
)

func serveCommands() []*cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the portfolio over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&port, "port", config.DefaultPort, "listen port")

	inboxCmd := &cobra.Command{
		Use:   "inbox",
		Short: "list contact form messages",
		RunE:  listInbox,
	}
	inboxCmd.Flags().IntVar(&inboxLimit, "limit", 20, "number of messages")

	return []*cobra.Command{serveCmd, inboxCmd}
}

// inboxPath resolves the database file inside the data directory unless it
// is absolute.
func inboxPath(cfg *config.Config) (string, error) {
	db := cfg.Server.DB
	if filepath.IsAbs(db) || db == ":memory:" {
		return db, nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(cfg.DataDir, db), nil
}

func openInbox(cfg *config.Config) (*inbox.Store, error) {
	path, err := inboxPath(cfg)
	if err != nil {
		return nil, err
	}
	box, err := inbox.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inbox: %w", err)
	}
	return box, nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	profile, err := loadProfile(cfg)
	if err != nil {
		return err
	}
	box, err := openInbox(cfg)
	if err != nil {
		return err
	}
	defer box.Close()

	r := server.New(profile, box, server.Config{Preset: preset})
	log.Printf("listening on :%s", cfg.Server.Port)
	return r.Run(":" + cfg.Server.Port)
}

func listInbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	box, err := openInbox(cfg)
	if err != nil {
		return err
	}
	defer box.Close()

	ctx := context.Background()
	total, err := box.Count(ctx)
	if err != nil {
		return err
	}
	msgs, err := box.List(ctx, inboxLimit)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Println("inbox is empty")
		return nil
	}

	fmt.Printf("%d of %d messages\n\n", len(msgs), total)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECEIVED\tFROM\tEMAIL\tMESSAGE")
	for _, m := range msgs {
		body := m.Body
		if r := []rune(body); len(r) > 50 {
			body = string(r[:47]) + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email, body)
	}
	return w.Flush()
}
