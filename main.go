// emochat - a terminal front end for the sentiment-chat service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/api"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/config"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/model"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/storage"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/chat"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/login"
	"github.com/Jay-Madame/Emotion-Aware-AI-Chatbot/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	serverURL := flag.String("server", "", "chat service base URL (overrides config)")
	authMode := flag.String("auth", "", "auth variant: basic or jwt (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("emochat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// The terminal belongs to the TUI; logs go to a file instead.
	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}
	if *authMode != "" {
		cfg.Server.AuthMode = *authMode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	theme := styles.NewTheme()

	client := api.NewClient(cfg.Server.BaseURL)
	if cfg.Server.TimeoutSecs > 0 {
		client.WithTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)
	}

	storagePath := cfg.Storage.Path
	if storagePath == "" {
		storagePath, err = storage.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	shelf := storage.Open(storagePath)

	m := newAppModel(theme, cfg, client, shelf)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running emochat: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to ~/.emochat/emochat.log.
// If that fails logging is discarded rather than corrupting the TUI.
func setupLogging() {
	dir, err := config.ConfigDir()
	if err == nil {
		if err = os.MkdirAll(dir, 0700); err == nil {
			var f *os.File
			f, err = os.OpenFile(filepath.Join(dir, "emochat.log"),
				os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
			if err == nil {
				log.SetOutput(f)
				return
			}
		}
	}
	log.SetOutput(os.Stderr)
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// appStage identifies which screen owns the terminal.
type appStage int

const (
	stageLogin appStage = iota
	stageChat
)

// historyImportedMsg carries the result of the post-login history
// fetch. Failure is non-fatal; the local shelf stands alone.
type historyImportedMsg struct {
	conv *model.Conversation
	err  error
}

// appModel is the root Bubble Tea model. It switches between the
// login gate and the chat view.
type appModel struct {
	stage appStage

	theme  *styles.Theme
	cfg    *config.Config
	client *api.Client
	shelf  *storage.Shelf

	login    login.Model
	chat     chat.Model
	username string

	width  int
	height int
}

func newAppModel(theme *styles.Theme, cfg *config.Config, client *api.Client, shelf *storage.Shelf) appModel {
	return appModel{
		stage:  stageLogin,
		theme:  theme,
		cfg:    cfg,
		client: client,
		shelf:  shelf,
		login:  login.New(theme, client, cfg.Server.AuthMode),
	}
}

// Init implements tea.Model.
func (m appModel) Init() tea.Cmd {
	return m.login.Init()
}

// Update implements tea.Model.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.login.SetSize(msg.Width, msg.Height)
		if m.stage == stageChat {
			var cmd tea.Cmd
			m.chat, cmd = m.chat.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		// The login gate has no quit binding of its own.
		if m.stage == stageLogin && (msg.String() == "ctrl+c" || msg.String() == "ctrl+q") {
			return m, tea.Quit
		}

	case login.DoneMsg:
		m.username = msg.Username
		m.chat = chat.New(m.theme, m.shelf, m.client, m.username, chat.Options{
			ShowSprite:    m.cfg.UI.ShowSprite,
			RevealReplies: m.cfg.UI.RevealReplies,
			ExportDir:     exportDir(),
		})
		m.chat.SetSize(m.width, m.height)
		m.stage = stageChat
		return m, tea.Batch(m.chat.Init(), importHistory(m.client, m.username))

	case historyImportedMsg:
		if msg.err != nil {
			log.Printf("history import failed: %v", msg.err)
			return m, nil
		}
		if msg.conv != nil {
			m.shelf.Import(msg.conv)
		}
		return m, nil

	case chat.AuthExpiredMsg:
		// The session died mid-chat. Back to the gate.
		m.stage = stageLogin
		m.login = login.New(m.theme, m.client, m.cfg.Server.AuthMode)
		m.login.SetSize(m.width, m.height)
		return m, m.login.Init()
	}

	var cmd tea.Cmd
	switch m.stage {
	case stageLogin:
		m.login, cmd = m.login.Update(msg)
	case stageChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m appModel) View() string {
	if m.stage == stageLogin {
		return m.login.View()
	}
	return m.chat.View()
}

// importHistory pulls the user's server-side exchanges onto the shelf.
// exportDir resolves where transcript exports land. Falls back to the
// working directory when the config directory is unavailable.
func exportDir() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "exports")
}

func importHistory(client *api.Client, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		exchanges, err := client.History(ctx, username)
		if err != nil {
			return historyImportedMsg{err: err}
		}
		return historyImportedMsg{conv: api.HistoryConversation(username, exchanges)}
	}
}
