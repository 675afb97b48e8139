// Command debugger is an interactive TUI that single-steps a loaded ROM
// one instruction at a time, showing registers, the decoded current
// instruction, and a scrolling memory page.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gones/internal/cpu"
	"gones/internal/nes"
)

var (
	pageStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	statusStyle = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	haltStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

type model struct {
	board  *nes.NES
	prevPC uint16
	steps  int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.board.CPU().PC
			m.stepOneInstruction()
			m.steps++
		}
	}
	return m, nil
}

// stepOneInstruction ticks the board until the in-flight instruction
// retires (PC has moved on, or the CPU halted).
func (m model) stepOneInstruction() {
	c := m.board.CPU()
	if c.State() == cpu.StateHalt {
		return
	}
	m.board.Tick()
	for c.Current() != nil && c.State() != cpu.StateHalt {
		m.board.Tick()
	}
}

func (m model) renderPage(start uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%04X | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		v := m.board.ReadMemory(addr)
		if addr == m.board.CPU().PC {
			fmt.Fprintf(&b, "[%02X]", v)
		} else {
			fmt.Fprintf(&b, " %02X ", v)
		}
	}
	return b.String()
}

func (m model) pageTable() string {
	base := m.board.CPU().PC &^ 0x00FF
	var lines []string
	for row := 0; row < 8; row++ {
		lines = append(lines, m.renderPage(base+uint16(row*16)))
	}
	return pageStyle.Render(strings.Join(lines, "\n"))
}

func (m model) status() string {
	c := m.board.CPU()
	flagBit := func(mask byte, label string) string {
		if c.P&mask != 0 {
			return strings.ToUpper(label)
		}
		return strings.ToLower(label)
	}
	flags := flagBit(0x80, "n") + flagBit(0x40, "v") + "-" +
		flagBit(0x10, "b") + flagBit(0x08, "d") + flagBit(0x04, "i") +
		flagBit(0x02, "z") + flagBit(0x01, "c")

	s := fmt.Sprintf(
		"PC: %04X (was %04X)\nA:  %02X\nX:  %02X\nY:  %02X\nSP: %02X\nP:  %s\ncycles: %d\nsteps: %d",
		c.PC, m.prevPC, c.A, c.X, c.Y, c.SP, flags, c.CycleCount(), m.steps,
	)
	if instr := c.Current(); instr != nil {
		s += fmt.Sprintf("\n\nin flight: %s", instr.Mnemonic)
	}
	if err := c.Err(); err != nil {
		s += "\n\n" + haltStyle.Render("halted: "+err.Error())
	}
	return statusStyle.Render(s)
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		"space/j: step one instruction   q: quit",
	)
}

func main() {
	romPath := flag.String("rom", "", "path to an iNES ROM file")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("usage: debugger -rom <file>")
	}
	data, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("reading ROM: %v", err)
	}

	board := nes.New()
	if err := board.LoadCartridge(data); err != nil {
		log.Fatalf("loading ROM: %v", err)
	}
	for board.CPU().State() == cpu.StateReset {
		board.Tick()
	}

	if _, err := tea.NewProgram(model{board: board}).Run(); err != nil {
		log.Fatal(err)
	}
}
