package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"qsim/quantum"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// padRight pads s with spaces to the given visual width.
func padRight(s string, width int) string {
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(gateType string) string {
	switch gateType {
	case "MEASURE":
		return "M"
	default:
		return gateType
	}
}

// controlSymbol returns the wire symbol for a control qubit.
func controlSymbol(string) string {
	return "●"
}

// targetSymbol returns the wire symbol for the target qubit of a controlled gate.
func targetSymbol(gateType string) string {
	switch gateType {
	case "CZ", "CCZ":
		return "●"
	default:
		return "⊕"
	}
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW (11) visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dblVertRow := strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", cellW-halfW-1)

	// ── Highlighted cell (cursor or target selection) ──
	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		if info.isBarrier {
			top = vertRow
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR) + bdr.Render("║")
			bot = vertRow
			return
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil && info.isControl:
			sym := controlSymbol(info.gate.Type)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil && info.isTarget:
			sym := targetSymbol(info.gate.Type)
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.gate != nil:
			name := padCenter(gateDisplayName(info.gate.Type), gateNameW)
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1
	margin := (cellW - gateBoxW) / 2
	rightMargin := cellW - margin - gateBoxW

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.gate != nil && (info.isControl || info.isTarget):
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		sym := controlSymbol(info.gate.Type)
		if info.isTarget {
			sym = targetSymbol(info.gate.Type)
		}
		mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.gate != nil:
		name := padCenter(gateDisplayName(info.gate.Type), gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		if info.measureBelow || info.gate.Type == "MEASURE" {
			bot = dblVertRow
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow
		if info.measureBelow {
			bot = dblVertRow
		}

	case info.measureBelow:
		// No gate here, but a measurement connection passes through vertically
		top = dblVertRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR)
		bot = dblVertRow

	default:
		// Empty wire
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// cellHighlightAt picks the highlight for the cell at (step, qubit).
func (m Model) cellHighlightAt(step, qubit int) cellHighlight {
	if step != m.cursorStep {
		return hlNone
	}
	selecting := m.focus == focusSelectTarget || m.focus == focusSelectControls
	switch {
	case qubit == m.cursorQubit && (m.focus == focusCircuit || m.focus == focusMenu || m.focus == focusInputInit || selecting):
		return hlCursor
	case selecting && (qubit == m.targetQubit || slices.Contains(m.controlQubits, qubit)):
		return hlTargetSelect
	}
	return hlNone
}

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	displaySteps := maxSteps

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+displaySteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines; the top line of the label shows its initial state
	for qubit := range m.circuit.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		if v, ok := m.circuit.Inits[qubit]; ok {
			topLine = activeGateStyle.Render(padRight(" "+ketLabel(v), labelVisualW))
		}
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			info := m.circuit.getCellInfo(step, qubit)
			top, mid, bot := renderCell(info, m.cellHighlightAt(step, qubit))
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// ── Classical bit wire (single line) ──
	if numCbits := m.circuit.NumCbits(); numCbits > 0 {
		label := fmt.Sprintf("c%d", numCbits)
		cbitLine := cbitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + cbitWireStyle.Render("══")

		for step := startStep; step < startStep+displaySteps; step++ {
			measuredQubit := m.circuit.GetMeasureAtStep(step)
			if measuredQubit >= 0 {
				// Show ╩ with the bit index next to it
				bitLabel := fmt.Sprintf("%d", measuredQubit)
				dashL := (cellW - 1) / 2
				dashR := max(cellW-dashL-1-len(bitLabel), 0)
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", dashL)) +
					cbitConnectorStyle.Render("╩"+bitLabel) +
					cbitWireStyle.Render(strings.Repeat("═", dashR))
			} else {
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", cellW))
			}
		}
		sb.WriteString(cbitLine + "\n")
	}

	// Status line
	switch m.focus {
	case focusSelectTarget, focusSelectControls:
		prompt := "Select target qubit: "
		if m.focus == focusSelectControls {
			prompt = "Select second control: "
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s  %s", activeGateStyle.Render(m.pendingGate), prompt)
		sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	default:
		fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %d", m.cursorStep, m.cursorQubit)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	if m.parseErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.parseErr.Error()))
	}

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// maxHistogramRows bounds the results panel; larger registers only list
// outcomes that were observed.
const maxHistogramRows = 16

// renderResultsPanel renders the marginal probabilities and the latest
// measurement histogram.
func (m Model) renderResultsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Results"))
	sb.WriteString("\n\n")

	if m.simErr != nil {
		sb.WriteString(errorStyle.Render(m.simErr.Error()))
		return resultsStyle.Width(width).Height(height).Render(sb.String())
	}

	sb.WriteString(renderQubitProbs(m.qubitProbs, barW))
	sb.WriteString("\n\n")

	counts := m.counts
	if len(counts) > maxHistogramRows {
		counts = make(quantum.Counts)
		for label, n := range m.counts {
			if n > 0 {
				counts[label] = n
			}
		}
	}
	sb.WriteString(renderHistogram(counts, barW))

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  +/- Qubits")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Add gate  ")
	sb.WriteString(activeGateStyle.Render("i"))
	sb.WriteString(" Init qubit  ")
	sb.WriteString(activeGateStyle.Render("m"))
	sb.WriteString(" Measure\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  Bksp Delete  ^R Reset  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// renderInitInput renders the initial-state input overlay.
func (m Model) renderInitInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Initial state of q[%d]", m.cursorQubit)))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Amplitudes: %s_", m.initInput)
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: 0, 1   1/sqrt2, -1/sqrt2   0.6, 0.8i"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("Tab Cycle presets  ⏎ Ok  Esc ✕"))
	return menuBorderStyle.Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// isEscFinal reports whether r terminates an ANSI escape sequence.
func isEscFinal(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix, suffix strings.Builder

	col := 0
	i := 0

	// Collect prefix: everything up to visible column x, escapes included
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				i++
				if runes[i-1] != '\x1b' && isEscFinal(runes[i-1]) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if runes[i-1] != '\x1b' && isEscFinal(runes[i-1]) {
					break
				}
			}
			continue
		}
		skipped++
		i++
	}

	suffix.WriteString(string(runes[i:]))

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscFinal(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
