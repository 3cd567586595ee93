package tui

import (
        "strings"

        "github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
        modalNone modalKind = iota
        modalAddEntry
        modalEditEntry
        modalConfirmDelete
        modalConfirmDiscard
)

type confirmModalFocus int

const (
        confirmFocusConfirm confirmModalFocus = iota
        confirmFocusCancel
)

func modalWidth(width int) int {
        w := width - 8
        if w > 64 {
                w = 64
        }
        if w < 24 {
                w = 24
        }
        return w
}

func modalBodyWidth(width int) int {
        return modalWidth(width) - 4
}

func renderModalBox(width int, title, content string) string {
        w := modalWidth(width)
        head := lipgloss.NewStyle().
                Bold(true).
                Foreground(colorSurfaceFg).
                Background(colorControlBg).
                Width(w-2).
                Padding(0, 1).
                Render(title)
        body := lipgloss.NewStyle().
                Foreground(colorSurfaceFg).
                Width(w-2).
                Padding(1, 1).
                Render(content)
        return lipgloss.NewStyle().
                Border(lipgloss.RoundedBorder()).
                BorderForeground(colorAccent).
                Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

func renderInputModal(width int, title, input, hint string) string {
        help := styleMuted().Width(modalBodyWidth(width)).Render("enter: save   esc: cancel")
        parts := []string{input}
        if hint != "" {
                parts = append(parts, "", styleError().Render(hint))
        }
        parts = append(parts, "", help)
        return renderModalBox(width, title, strings.Join(parts, "\n"))
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
        btnBase := lipgloss.NewStyle().
                Padding(0, 1).
                Foreground(colorSurfaceFg).
                Background(colorControlBg)
        btnActive := btnBase.
                Foreground(colorSelectedFg).
                Background(colorSelectedBg).
                Bold(true)

        confirm := btnBase.Render(confirmLabel)
        cancel := btnBase.Render(cancelLabel)
        if focus == confirmFocusConfirm {
                confirm = btnActive.Render(confirmLabel)
        } else {
                cancel = btnActive.Render(cancelLabel)
        }
        controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
        help := styleMuted().Width(modalBodyWidth(width)).Render("tab: focus   enter: select   y/n   esc: cancel")
        return renderModalBox(width, title, strings.Join([]string{body, "", controls, "", help}, "\n"))
}

// overlay centers box over a background of the given size.
func overlay(width, height int, box string) string {
        return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
