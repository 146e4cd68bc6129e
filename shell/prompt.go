package shell

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	git "github.com/go-git/go-git/v5"
	"github.com/muesli/termenv"

	"github.com/home-lang/den/config"
)

// Prompt renders the shell prompt. Styling is decided once at startup: it
// requires an interactive terminal, a color-capable profile, and the config
// switch; anything else falls back to a plain ASCII prompt.
type Prompt struct {
	cfg    *config.Config
	styled bool

	dirStyle    lipgloss.Style
	branchStyle lipgloss.Style
	okStyle     lipgloss.Style
	failStyle   lipgloss.Style
}

// NewPrompt builds a prompt for the session.
func NewPrompt(cfg *config.Config, interactive bool) *Prompt {
	styled := cfg.ColorPrompt && interactive && termenv.ColorProfile() != termenv.Ascii
	return &Prompt{
		cfg:         cfg,
		styled:      styled,
		dirStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		branchStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		okStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		failStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Render produces the prompt string for the next read, coloring the marker
// by the previous command's exit status.
func (p *Prompt) Render(lastStatus int) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}
	dir := abbreviateHome(cwd)

	branch := ""
	if p.cfg.GitPrompt {
		branch = gitBranch(cwd)
	}

	if !p.styled {
		var b strings.Builder
		b.WriteString(dir)
		if branch != "" {
			fmt.Fprintf(&b, " (%s)", branch)
		}
		b.WriteString(" $ ")
		return b.String()
	}

	var b strings.Builder
	b.WriteString(p.dirStyle.Render(dir))
	if branch != "" {
		b.WriteString(" ")
		b.WriteString(p.branchStyle.Render(branch))
	}
	marker := p.okStyle.Render("❯")
	if lastStatus != 0 {
		marker = p.failStyle.Render("❯")
	}
	b.WriteString(" ")
	b.WriteString(marker)
	b.WriteString(" ")
	return b.String()
}

// gitBranch returns the checked-out branch of the repository containing dir,
// a short commit hash when HEAD is detached, or "" when dir is not inside a
// repository.
func gitBranch(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	if head.Name().IsBranch() {
		return head.Name().Short()
	}
	hash := head.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return hash
}

func abbreviateHome(dir string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+string(os.PathSeparator)) {
		return "~" + dir[len(home):]
	}
	return dir
}
