package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/chiuchau-cyril/moltbot-dashboard/internal/providers"
	"github.com/chiuchau-cyril/moltbot-dashboard/internal/structures"
)

type PublisherInterface interface {
	Publish(ctx context.Context, message string) bool
}

type GitPublisher struct {
	conf   structures.PublisherConfig
	runner CommandRunner
	logger providers.Logger
}

func NewGitPublisher(conf *structures.Config, runner CommandRunner, logger providers.Logger) PublisherInterface {
	return &GitPublisher{
		conf:   conf.Publisher,
		runner: runner,
		logger: logger,
	}
}

// CommitMessage is the message every data update is committed with.
func CommitMessage(localTimestamp string) string {
	return "Update " + localTimestamp
}

func (g *GitPublisher) pushArgs() []string {
	args := []string{"push"}
	if g.conf.Remote != "" {
		args = append(args, g.conf.Remote)
		if g.conf.Branch != "" {
			args = append(args, g.conf.Branch)
		}
	}
	return args
}

// Publish stages, commits and pushes the working tree. It stops at the first
// failing step and reports false; nothing is retried.
func (g *GitPublisher) Publish(ctx context.Context, message string) bool {
	steps := [][]string{
		{"add", "-A"},
		{"commit", "-m", message},
		g.pushArgs(),
	}

	for _, args := range steps {
		out, err := g.runner.Run(ctx, g.conf.RepoDir, "git", args...)
		if err != nil {
			g.logger.Warnf(providers.TypeGit, "Git push failed: git %s: %s", strings.Join(args, " "), describe(err, out))
			return false
		}
	}

	g.logger.Infof(providers.TypeGit, "Pushed to %s", g.target())
	return true
}

func (g *GitPublisher) target() string {
	if g.conf.Remote == "" {
		return "upstream"
	}
	if g.conf.Branch == "" {
		return g.conf.Remote
	}
	return g.conf.Remote + "/" + g.conf.Branch
}

func describe(err error, out []byte) string {
	output := strings.TrimSpace(string(out))
	if output == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s (%s)", err, output)
}
