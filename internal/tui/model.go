// Package tui implements the terminal user interface of the todo list.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sanLimbu/todo-list/pkg/client"
)

const (
	// MessageEmptyDescription is shown when adding a todo without description.
	MessageEmptyDescription = "Todo description cannot be empty"

	// MessageGenericError is shown when any request fails.
	MessageGenericError = "An error occurred, please try again later."
)

// TodoService defines the calls the todo list makes to the backend, *client.Client implements it.
type TodoService interface {
	GetAllTodos(ctx context.Context) ([]client.Todo, error)
	SaveTodo(ctx context.Context, description string) (client.Todo, error)
	CompleteTodo(ctx context.Context, id int64) (client.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// NoticeKind indicates the severity of a notification.
type NoticeKind int

const (
	NoticeWarning NoticeKind = iota
	NoticeError
)

// Notice is a notification shown until the next key press.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Focus indicates which part of the UI receives key presses.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

type todosLoadedMsg struct {
	todos []client.Todo
}

type todoSavedMsg struct {
	todo client.Todo
}

type todoCompletedMsg struct {
	id int64
}

type todoDeletedMsg struct {
	id int64
}

type errMsg struct {
	err error
}

// Model holds the local, ordered, list of todos.
type Model struct {
	ctx    context.Context
	svc    TodoService
	keys   KeyMap
	styles Styles
	help   help.Model

	todos  []client.Todo
	cursor int
	focus  Focus
	input  textinput.Model
	notice *Notice

	// Err is the last request failure, kept for the caller once the program exits.
	Err error
}

// New creates the todo list, requests are bound to ctx.
func New(ctx context.Context, svc TodoService) *Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 200
	input.Focus()

	return &Model{
		ctx:    ctx,
		svc:    svc,
		keys:   DefaultKeyMap(),
		styles: NewStyles(),
		help:   help.New(),
		input:  input,
		focus:  FocusInput,
	}
}

// Todos returns the todos currently displayed.
func (m *Model) Todos() []client.Todo {
	return m.todos
}

// Notice returns the notification currently displayed, if any.
func (m *Model) Notice() *Notice {
	return m.notice
}

// Input returns the value of the description input.
func (m *Model) Input() string {
	return m.input.Value()
}

// Init loads every todo once.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTodos)
}

func (m *Model) loadTodos() tea.Msg {
	todos, err := m.svc.GetAllTodos(m.ctx)
	if err != nil {
		return errMsg{err}
	}

	return todosLoadedMsg{todos}
}

func (m *Model) saveTodo(description string) tea.Cmd {
	return func() tea.Msg {
		todo, err := m.svc.SaveTodo(m.ctx, description)
		if err != nil {
			return errMsg{err}
		}

		return todoSavedMsg{todo}
	}
}

func (m *Model) completeTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.CompleteTodo(m.ctx, id); err != nil {
			return errMsg{err}
		}

		return todoCompletedMsg{id}
	}
}

func (m *Model) deleteTodo(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTodo(m.ctx, id); err != nil {
			return errMsg{err}
		}

		return todoDeletedMsg{id}
	}
}

// Update handles messages and key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todosLoadedMsg:
		m.todos = msg.todos
		m.cursor = 0

		return m, nil

	case todoSavedMsg:
		m.todos = append(m.todos, msg.todo)
		m.input.Reset()

		return m, nil

	case todoCompletedMsg:
		for i := range m.todos {
			if m.todos[i].ID == msg.id {
				m.todos[i].Status = true
			}
		}

		return m, nil

	case todoDeletedMsg:
		todos := make([]client.Todo, 0, len(m.todos))
		for _, todo := range m.todos {
			if todo.ID != msg.id {
				todos = append(todos, todo)
			}
		}

		m.todos = todos
		m.cursor = clamp(m.cursor, 0, len(m.todos)-1)

		return m, nil

	case errMsg:
		m.Err = msg.err
		m.notice = &Notice{Kind: NoticeError, Text: MessageGenericError}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if m.notice != nil {
			m.notice = nil
			return m, nil
		}

		if key.Matches(msg, m.keys.Tab) {
			m.toggleFocus()
			return m, nil
		}

		if m.focus == FocusInput {
			return m.updateInput(msg)
		}

		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Add) {
		description := m.input.Value()
		if strings.TrimSpace(description) == "" {
			m.notice = &Notice{Kind: NoticeWarning, Text: MessageEmptyDescription}
			return m, nil
		}

		return m, m.saveTodo(description)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(m.todos)-1)

	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(m.todos)-1)

	case key.Matches(msg, m.keys.Complete):
		if len(m.todos) == 0 {
			return m, nil
		}

		// Completed rows are sent too, the server answers with the same row.
		return m, m.completeTodo(m.todos[m.cursor].ID)

	case key.Matches(msg, m.keys.Delete):
		if len(m.todos) == 0 {
			return m, nil
		}

		return m, m.deleteTodo(m.todos[m.cursor].ID)
	}

	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == FocusInput {
		m.focus = FocusList
		m.input.Blur()

		return
	}

	m.focus = FocusInput
	m.input.Focus()
}

// View renders the todo list.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Todo List"))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n\n")

	if len(m.todos) == 0 {
		b.WriteString(m.styles.Empty.Render("Nothing to do."))
		b.WriteString("\n")
	}

	for i, todo := range m.todos {
		check := "[ ]"
		if todo.Status {
			check = "[x]"
		}

		description := ""
		if todo.Description != nil {
			description = *todo.Description
		}

		if todo.Status {
			description = m.styles.Completed.Render(description)
		}

		line := fmt.Sprintf("%s %s", check, description)

		if m.focus == FocusList && i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Item.Render("  " + line))
		}

		b.WriteString("\n")
	}

	if m.notice != nil {
		style := m.styles.Warning
		if m.notice.Kind == NoticeError {
			style = m.styles.Error
		}

		b.WriteString("\n")
		b.WriteString(style.Render(m.notice.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// clamp returns val clamped between minVal and maxVal, minVal wins for empty ranges.
func clamp(val, minVal, maxVal int) int {
	if val > maxVal {
		val = maxVal
	}

	if val < minVal {
		val = minVal
	}

	return val
}
