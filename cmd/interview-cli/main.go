package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/client"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/tui"
)

func main() {
	server := flag.String("server", "http://localhost:5000", "HireFlow API base URL")
	upload := flag.String("upload", "", "resume (PDF or DOCX) to upload before the interview")
	candidate := flag.String("candidate", "", "candidate id to interview (defaults to the uploaded filename)")
	timeout := flag.Duration("timeout", 90*time.Second, "per-request timeout")
	flag.Parse()

	if err := run(*server, *upload, *candidate, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "interview-cli:", err)
		os.Exit(1)
	}
}

func run(server, upload, candidate string, timeout time.Duration) error {
	ctx := context.Background()
	c := client.New(server, timeout, zap.NewNop())

	health, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("server %s is not reachable: %w", server, err)
	}
	fmt.Printf("%s: %s\n", server, health.Message)

	if upload != "" {
		resp, err := c.UploadResume(ctx, upload, candidate)
		if err != nil {
			return fmt.Errorf("upload %s: %w", upload, err)
		}
		candidate = resp.ID
		fmt.Printf("%s (candidate %s)\n", resp.Message, resp.ID)
	}

	p := tea.NewProgram(tui.New(ctx, c, candidate), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
