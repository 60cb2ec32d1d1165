package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"qsim/quantum"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusSelectControls
	focusInputInit
)

// Model represents the TUI application state.
type Model struct {
	circuit     *Circuit // layout is the single source of truth
	cfg         *Config
	logger      *zap.Logger
	rng         *rand.Rand
	cursorQubit int
	cursorStep  int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)
	parseErr    error  // last QASM editor parse failure

	// Simulation results
	simErr     error
	counts     quantum.Counts
	qubitProbs []quantum.QubitProbability

	// Menu state
	menuCat  int
	menuItem int

	// Target-selection state (for controlled gates)
	pendingGate   string
	targetQubit   int
	controlQubits []int

	// Init input state
	initInput string
	presetIdx int
}

func initialModel(cfg *Config, logger *zap.Logger, circuit *Circuit) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline.SetEnabled(true)

	if circuit == nil {
		circuit = NewCircuit(cfg.Qubits)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		circuit:    circuit,
		cfg:        cfg,
		logger:     logger,
		rng:        cfg.newRand(),
		qasmEditor: ta,
		focus:      focusCircuit,
	}

	m.syncFromCircuit()
	return m
}

// syncFromCircuit refreshes the QASM view and the results after a layout change.
func (m *Model) syncFromCircuit() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.parseErr = nil
	m.resimulate()
}

// resimulate replays the whole circuit and samples a fresh histogram.
func (m *Model) resimulate() {
	m.counts = nil
	m.qubitProbs = nil

	sim, err := SimulateCircuit(m.circuit, -1, simOptions(m.rng, m.logger)...)
	if err != nil {
		m.simErr = err
		m.logger.Warn("simulation failed", zap.Error(err))
		return
	}
	m.qubitProbs = sim.State().QubitProbabilities()
	m.counts, m.simErr = sim.Measure(m.cfg.Shots)
}

// parseQASMInput rebuilds the circuit from the editor text. A parse error
// keeps the previous circuit.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm

	parsed := NewCircuit(0)
	if err := parsed.ParseQASM(qasm); err != nil {
		m.parseErr = err
		return
	}
	if parsed.NumQubits < 1 || parsed.NumQubits > quantum.MaxQubits {
		m.parseErr = errors.Errorf("qreg size must be in [1,%d]", quantum.MaxQubits)
		return
	}
	m.parseErr = nil
	m.circuit = parsed
	m.cursorQubit = min(m.cursorQubit, m.circuit.NumQubits-1)
	m.resimulate()
}

// placeGate places a gate on the circuit at the cursor position.
// targetQ is the target qubit for controlled gates (-1 for single-qubit).
// Returns true if placement succeeded, false if blocked by conflict.
func (m *Model) placeGate(gateType string, targetQ int) bool {
	var qubitsNeeded []int
	switch gateType {
	case "CX", "CZ":
		qubitsNeeded = []int{m.cursorQubit, targetQ}
	case "CCX", "CCZ":
		qubitsNeeded = append([]int{m.cursorQubit, targetQ}, m.controlQubits...)
	case "BARRIER":
		qubitsNeeded = nil
	default:
		qubitsNeeded = []int{m.cursorQubit}
	}

	defer func() {
		m.controlQubits = nil
		m.pendingGate = ""
	}()

	if len(qubitsNeeded) > 0 && !m.circuit.CanPlaceGateAt(m.cursorStep, qubitsNeeded) {
		m.statusMsg = "Cannot place: qubit already used by another gate at this step"
		return false
	}

	for _, q := range qubitsNeeded {
		m.circuit.RemoveGateAt(m.cursorStep, q)
	}

	switch gateType {
	case "CX", "CZ":
		m.circuit.AddGate(gateType, targetQ, m.cursorStep, m.cursorQubit)
	case "CCX", "CCZ":
		controls := append([]int{m.cursorQubit}, m.controlQubits...)
		m.circuit.AddGate(gateType, targetQ, m.cursorStep, controls...)
	case "BARRIER":
		m.circuit.AddBarrier(m.cursorStep)
	default:
		m.circuit.AddGate(gateType, m.cursorQubit, m.cursorStep)
	}

	m.logger.Debug("gate placed",
		zap.String("gate", gateType),
		zap.Int("step", m.cursorStep),
		zap.Ints("qubits", qubitsNeeded))

	m.cursorStep++
	m.syncFromCircuit()
	return true
}

// commitInit validates and stores the initial vector of the cursor qubit.
func (m *Model) commitInit() bool {
	v, err := parseInitVector(m.initInput)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Init error: %v", err)
		return false
	}

	trial := m.circuit.Clone()
	trial.SetInit(m.cursorQubit, v)
	if _, err := SimulateCircuit(trial, 0); err != nil {
		m.statusMsg = fmt.Sprintf("Init error: %v", err)
		return false
	}

	m.circuit = trial
	m.statusMsg = fmt.Sprintf("q[%d] starts in %s", m.cursorQubit, ketLabel(v))
	m.syncFromCircuit()
	return true
}

// save writes the circuit QASM to the configured path.
func (m *Model) save() {
	if err := os.WriteFile(m.cfg.SavePath, []byte(m.circuit.ToQASM()), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		m.logger.Error("save failed", zap.String("path", m.cfg.SavePath), zap.Error(err))
		return
	}
	m.statusMsg = "Saved " + m.cfg.SavePath
	m.logger.Info("circuit saved", zap.String("path", m.cfg.SavePath))
}

// nextFree returns the nearest qubit from `from` in direction dir that is
// neither the cursor qubit nor an already chosen control, or `from` itself.
func (m *Model) nextFree(from, dir int) int {
	for next := from + dir; next >= 0 && next < m.circuit.NumQubits; next += dir {
		if next != m.cursorQubit && !slices.Contains(m.controlQubits, next) {
			return next
		}
	}
	return from
}

// firstFree returns the lowest qubit available as a target or control.
func (m *Model) firstFree() int {
	return m.nextFree(-1, 1)
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 6
		circH := msg.Height - ctrlH - 4
		editorH := max(circH/2-6, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circuit = NewCircuit(m.circuit.NumQubits)
				m.cursorStep = 0
				m.syncFromCircuit()
			case "ctrl+s":
				m.save()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				m.cursorStep++
			case "+", "=":
				if m.circuit.NumQubits < quantum.MaxQubits {
					m.circuit.NumQubits++
					m.syncFromCircuit()
				} else {
					m.statusMsg = fmt.Sprintf("At most %d qubits", quantum.MaxQubits)
				}
			case "-":
				if m.circuit.NumQubits > 1 {
					m.circuit.NumQubits--
					m.cursorQubit = min(m.cursorQubit, m.circuit.NumQubits-1)
					m.circuit.RemoveGatesOnQubit(m.circuit.NumQubits)
					m.syncFromCircuit()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "i":
				v, ok := m.circuit.Inits[m.cursorQubit]
				if !ok {
					v = [2]complex128{1, 0}
				}
				m.initInput = formatInitVector(v)
				m.presetIdx = max(presetIndex(v), 0)
				m.focus = focusInputInit
			case "m":
				m.resimulate()
			case "backspace", "delete":
				m.circuit.RemoveGateAt(m.cursorStep, m.cursorQubit)
				m.syncFromCircuit()
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingGate = item.gateType
				m.controlQubits = nil

				if !item.needsTarget {
					if m.placeGate(item.gateType, -1) {
						m.focus = focusCircuit
					}
					break
				}
				if m.circuit.NumQubits < item.controls+1 {
					m.statusMsg = fmt.Sprintf("%s needs %d qubits", item.gateType, item.controls+1)
					m.focus = focusCircuit
					break
				}
				m.targetQubit = m.firstFree()
				if item.controls > 1 {
					m.focus = focusSelectControls
				} else {
					m.focus = focusSelectTarget
				}
			}

		case focusSelectTarget, focusSelectControls:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.controlQubits = nil
				m.pendingGate = ""
			case "up", "k":
				m.targetQubit = m.nextFree(m.targetQubit, -1)
			case "down", "j":
				m.targetQubit = m.nextFree(m.targetQubit, 1)
			case "enter":
				if m.focus == focusSelectControls {
					m.controlQubits = append(m.controlQubits, m.targetQubit)
					m.targetQubit = m.firstFree()
					m.focus = focusSelectTarget
					break
				}
				if m.placeGate(m.pendingGate, m.targetQubit) {
					m.focus = focusCircuit
				}
			}

		case focusInputInit:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.initInput = ""
			case "backspace":
				if len(m.initInput) > 0 {
					m.initInput = m.initInput[:len(m.initInput)-1]
				}
			case "tab":
				m.presetIdx = (m.presetIdx + 1) % len(initPresets)
				m.initInput = formatInitVector(initPresets[m.presetIdx].vector)
			case "enter":
				if m.commitInit() {
					m.focus = focusCircuit
					m.initInput = ""
				}
			default:
				if len(key) == 1 && strings.ContainsAny(key, "0123456789.,-+/ iesqrt()") {
					m.initInput += key
				}
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 6
	circuitHeight := max(m.height-controlsHeight-2, 6)
	qasmHeight := circuitHeight / 2
	resultsHeight := circuitHeight - qasmHeight - 2

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(sideWidth, qasmHeight)
	resultsPanel := m.renderResultsPanel(sideWidth, resultsHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	side := lipgloss.JoinVertical(lipgloss.Left, qasmPanel, resultsPanel)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, side)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	switch m.focus {
	case focusMenu:
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	case focusInputInit:
		frame = overlayAt(frame, m.renderInitInput(), 2, 2)
	}

	return frame
}
