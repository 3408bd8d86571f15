package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/milk9111/pathpaint/common"
	"github.com/milk9111/pathpaint/config"
	"github.com/milk9111/pathpaint/grid"
	"github.com/milk9111/pathpaint/interact"
	"github.com/milk9111/pathpaint/pathfind"
	"github.com/milk9111/pathpaint/session"
)

// headerLines is the number of lines View prints above the grid.
const headerLines = 1

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d000"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

func newTUICmd(flags *config.Flags) *cobra.Command {
	var src gridSource

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a grid in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd.Flags())
			if err != nil {
				return err
			}
			g, opts, err := src.build(cmd.Context(), cfg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			pal, err := cfg.Palette.Resolve()
			if err != nil {
				return err
			}

			client := pathfind.NewClient(pathfind.NewSearcher(cfg.SearchBudget))
			s := session.New(cmd.Context(), session.Config{
				Grid:    g,
				Client:  client,
				Options: opts,
			})
			s.UseRecomputer(pathfind.NewRecomputer(client))

			m := newTUIModel(s, newCellStyles(pal))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}

	src.register(cmd)
	return cmd
}

// resultMsg carries a finished background computation back to Update.
type resultMsg pathfind.Result

type tuiModel struct {
	session *session.Session
	styles  cellStyles

	width, height int
}

func newTUIModel(s *session.Session, styles cellStyles) *tuiModel {
	return &tuiModel{session: s, styles: styles}
}

func (m *tuiModel) Init() tea.Cmd {
	return m.nextJob()
}

// nextJob runs the job queued by the last change, if any.
func (m *tuiModel) nextJob() tea.Cmd {
	job, ok := m.session.TakeJob()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		res, ok := job.Run()
		if !ok {
			return nil
		}
		return resultMsg(res)
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.session.SetViewport(float64(msg.Width), float64(msg.Height))
	case resultMsg:
		m.session.Deliver(pathfind.Result(msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "d":
			m.session.SetDiagonal(!m.session.Options().AllowDiagonal)
		case "c":
			m.session.SetCornerCutting(!m.session.Options().PreventCornerCutting)
		case "r":
			w, h := m.session.Dimensions()
			m.session.Resize(float64(w), float64(h))
		case "esc":
			m.session.CancelGesture()
		}
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, m.nextJob()
}

func (m *tuiModel) mouse(msg tea.MouseMsg) {
	p := grid.Point{X: msg.X / 2, Y: msg.Y - headerLines}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.session.PointerCell(interact.PointerDown, p)
		}
	case tea.MouseActionMotion:
		if m.session.Mode() != interact.Idle {
			m.session.PointerCell(interact.PointerMove, p)
		}
	case tea.MouseActionRelease:
		m.session.PointerCell(interact.PointerUp, p)
	}
}

func (m *tuiModel) View() string {
	opts := m.session.Options()
	w, h := m.session.Dimensions()

	var b strings.Builder
	b.WriteString(titleStyle.Render("pathpaint"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %dx%d  diagonal:%s  corner cutting:%s  path:%s",
		w, h, onOff(opts.AllowDiagonal), onOff(!opts.PreventCornerCutting), pathSummary(m.session.Path()))))
	b.WriteByte('\n')

	maxCols, maxRows := 0, 0
	if m.width > 0 && m.height > 0 {
		maxCols = common.Clamp(m.width/2, 1, w)
		maxRows = common.Clamp(m.height-headerLines-1, 1, h)
	}
	b.WriteString(drawGridWindow(m.session.Grid(), pathfind.Expand(m.session.Path()), m.styles, maxCols, maxRows))
	b.WriteString(dimStyle.Render("drag to paint  d diagonal  c corner cutting  r reset  q quit"))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func pathSummary(p pathfind.Path) string {
	if len(p) == 0 {
		return "none"
	}
	return fmt.Sprintf("%d waypoints", len(p))
}
