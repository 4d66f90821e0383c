package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lenscope/lenscope/internal/domain"
	"github.com/lenscope/lenscope/internal/tui/styles"
)

// SignInStage tracks the modal's progress through the login flow
type SignInStage int

const (
	StageEnterHandle SignInStage = iota
	StageRequesting
	StageAwaitApproval
	StageFailed
)

// SignInModal drives the wallet-approval sign-in: enter a handle or
// address, then match the displayed code in the wallet app.
type SignInModal struct {
	theme styles.Theme

	visible   bool
	stage     SignInStage
	input     textinput.Model
	challenge domain.LoginChallenge
	errText   string
}

// NewSignInModal creates the modal
func NewSignInModal(theme styles.Theme) SignInModal {
	ti := textinput.New()
	ti.Placeholder = "handle or 0x address"
	ti.CharLimit = 64
	ti.Width = 34
	ti.Prompt = "@ "

	return SignInModal{theme: theme, input: ti}
}

// SetTheme swaps the palette
func (m *SignInModal) SetTheme(theme styles.Theme) { m.theme = theme }

// Show opens the modal at the handle prompt
func (m *SignInModal) Show() {
	m.visible = true
	m.stage = StageEnterHandle
	m.errText = ""
	m.input.SetValue("")
	m.input.Focus()
}

// Hide dismisses the modal
func (m *SignInModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m SignInModal) IsVisible() bool { return m.visible }

// Stage returns the current flow stage
func (m SignInModal) Stage() SignInStage { return m.stage }

// Account returns the entered handle or address
func (m SignInModal) Account() string {
	return strings.TrimSpace(m.input.Value())
}

// Challenge returns the pending challenge
func (m SignInModal) Challenge() domain.LoginChallenge { return m.challenge }

// SetRequesting marks the challenge request as in flight
func (m *SignInModal) SetRequesting() {
	m.stage = StageRequesting
	m.input.Blur()
}

// SetChallenge installs the started challenge and moves to approval
func (m *SignInModal) SetChallenge(ch domain.LoginChallenge) {
	m.challenge = ch
	m.stage = StageAwaitApproval
}

// SetError shows a failure and returns to the handle prompt on next Show
func (m *SignInModal) SetError(text string) {
	m.stage = StageFailed
	m.errText = text
}

// Update handles input events, returning (modal, cmd, submitted)
func (m SignInModal) Update(msg tea.Msg) (SignInModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.stage == StageEnterHandle && m.Account() != "" {
				return m, nil, true
			}
			if m.stage == StageFailed {
				m.stage = StageEnterHandle
				m.input.Focus()
			}
			return m, nil, false
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	if m.stage != StageEnterHandle {
		return m, nil, false
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the modal for the current stage
func (m SignInModal) View() string {
	if !m.visible {
		return ""
	}

	title := m.theme.Title().Render("Sign in")
	var body []string

	switch m.stage {
	case StageEnterHandle:
		body = []string{
			m.theme.Subtitle().Render("Which account?"),
			"",
			m.input.View(),
			"",
			m.theme.Muted().Render("enter to continue · esc to cancel"),
		}
	case StageRequesting:
		body = []string{
			m.theme.Subtitle().Render("Requesting challenge…"),
		}
	case StageAwaitApproval:
		body = []string{
			m.theme.Subtitle().Render("Approve this login in your wallet app."),
			"",
			m.theme.Subtitle().Render("Match code: ") + m.theme.AccentText().Bold(true).Render(m.challenge.Code),
			m.theme.Muted().Render(m.challenge.VerifyURL),
			"",
			m.theme.Muted().Render("waiting for approval… esc to cancel"),
		}
	case StageFailed:
		body = []string{
			m.theme.ErrorText().Render(m.errText),
			"",
			m.theme.Muted().Render("enter to retry · esc to cancel"),
		}
	}

	content := title + "\n\n" + strings.Join(body, "\n")
	return m.theme.Modal().Render(content)
}
