package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eiannone/keyboard"
)

type MenuItem struct {
	Label string
	Value string
}

type Menu struct {
	Title    string
	Items    []MenuItem
	Selected int
	Width    int
	out      io.Writer
}

func NewMenu(title string, items []MenuItem) *Menu {
	return &Menu{
		Title:    title,
		Items:    items,
		Selected: 0,
		Width:    50,
		out:      os.Stdout,
	}
}

func (m *Menu) horizontal(left, right string) string {
	return left + strings.Repeat("═", m.Width-2) + right
}

func (m *Menu) centerText(text string) string {
	inner := m.Width - 4
	runes := []rune(text)
	if len(runes) >= inner {
		return string(runes[:inner])
	}
	padding := (inner - len(runes)) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", inner-len(runes)-padding)
}

func (m *Menu) render() {
	fmt.Fprint(m.out, clearSequence)

	fmt.Fprintln(m.out, m.horizontal("╔", "╗"))
	fmt.Fprintf(m.out, "║ %s ║\n", m.centerText(m.Title))
	fmt.Fprintln(m.out, m.horizontal("╠", "╣"))

	for i, item := range m.Items {
		prefix := "  "
		if i == m.Selected {
			prefix = "► "
		}
		text := m.centerText(prefix + item.Label)
		if i == m.Selected {
			fmt.Fprintf(m.out, "║ \033[7m%s\033[0m ║\n", text) // Highlighted
		} else {
			fmt.Fprintf(m.out, "║ %s ║\n", text)
		}
	}

	fmt.Fprintln(m.out, m.horizontal("╚", "╝"))
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Use ↑/↓ arrows to navigate, Enter to select, 'q' to quit")
}

func (m *Menu) moveUp() {
	if m.Selected > 0 {
		m.Selected--
	} else {
		m.Selected = len(m.Items) - 1 // Wrap to bottom
	}
}

func (m *Menu) moveDown() {
	if m.Selected < len(m.Items)-1 {
		m.Selected++
	} else {
		m.Selected = 0 // Wrap to top
	}
}

// Show draws the menu and returns the chosen item's value, or "exit".
// The keyboard is released before Show returns so line input works again.
func (m *Menu) Show() (string, error) {
	if len(m.Items) == 0 {
		return "exit", nil
	}
	if err := keyboard.Open(); err != nil {
		return "", fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	for {
		m.render()

		char, key, err := keyboard.GetKey()
		if err != nil {
			return "", fmt.Errorf("failed to read key: %w", err)
		}

		switch key {
		case keyboard.KeyArrowUp:
			m.moveUp()
		case keyboard.KeyArrowDown:
			m.moveDown()
		case keyboard.KeyEnter:
			fmt.Fprint(m.out, clearSequence)
			return m.Items[m.Selected].Value, nil
		case keyboard.KeyEsc, keyboard.KeyCtrlC:
			return "exit", nil
		}

		if char == 'q' || char == 'Q' {
			return "exit", nil
		}
	}
}
