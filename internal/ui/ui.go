package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dstrand/photoweb/internal/albums"
	"github.com/dstrand/photoweb/internal/library"
	"github.com/dstrand/photoweb/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	PhotoListView
	PhotoInfoView
)

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	view   ViewState
	store  *library.Store
	width  int
	height int

	tree          *albums.TreeNode
	trail         []*albums.TreeNode // path from the root to the current node
	browseList    list.Model
	photoList     list.Model
	selectedAlbum *models.Album
	selectedPhoto *models.Photo

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over the given library store.
func NewModel(ctx context.Context, store *library.Store) *Model {
	return &Model{
		ctx:   ctx,
		view:  BrowseView,
		store: store,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by loading the library export.
func (m *Model) Init() tea.Cmd {
	return m.loadLibrary()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.browseList.Width() == 0 {
			m.browseList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.photoList.Width() == 0 {
			m.photoList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BrowseView:
			return m.handleBrowseKeys(msg)
		case PhotoListView:
			return m.handlePhotoListKeys(msg)
		case PhotoInfoView:
			return m.handlePhotoInfoKeys(msg)
		}

	case libraryLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.tree = albums.BuildTree(msg.lib.Albums)
		m.trail = []*albums.TreeNode{m.tree}
		m.view = BrowseView
		m.selectedAlbum = nil
		m.selectedPhoto = nil
		m.rebuildBrowseList()
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}
	if m.tree == nil {
		return styles.help.Render("Loading library...")
	}

	switch m.view {
	case BrowseView:
		return m.renderBrowse()
	case PhotoListView:
		return m.renderPhotoList()
	case PhotoInfoView:
		return m.renderPhotoInfo()
	default:
		return ""
	}
}

func (m *Model) current() *albums.TreeNode {
	return m.trail[len(m.trail)-1]
}

// breadcrumb renders the trail as a slash-joined path, "Library" at the root.
func (m *Model) breadcrumb() string {
	if len(m.trail) == 1 {
		return "Library"
	}
	parts := make([]string, 0, len(m.trail)-1)
	for _, node := range m.trail[1:] {
		parts = append(parts, node.Name)
	}
	return "Library/" + strings.Join(parts, "/")
}

func (m *Model) rebuildBrowseList() {
	node := m.current()
	items := make([]list.Item, 0, len(node.Nodes)+len(node.Albums))
	for _, child := range node.Nodes {
		items = append(items, folderItem{node: child})
	}
	for _, album := range node.Albums {
		items = append(items, albumItem{album: album})
	}

	m.browseList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.browseList.Title = m.breadcrumb()
	m.browseList.SetSize(m.width-4, m.height-8)
}

func (m *Model) openAlbum(album *models.Album) {
	m.selectedAlbum = album

	lib := m.store.Library()
	items := make([]list.Item, 0, len(album.Photos))
	for _, uuid := range album.Photos {
		if photo, ok := lib.Photos[uuid]; ok {
			items = append(items, photoItem{photo: photo})
		}
	}

	m.photoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.photoList.Title = fmt.Sprintf("Photos in '%s'", album.Title)
	m.photoList.SetSize(m.width-4, m.height-8)
	m.view = PhotoListView
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.loadLibrary()
	case "esc":
		if len(m.trail) > 1 {
			m.trail = m.trail[:len(m.trail)-1]
			m.rebuildBrowseList()
		}
		return m, nil
	case "enter":
		switch item := m.browseList.SelectedItem().(type) {
		case folderItem:
			m.trail = append(m.trail, item.node)
			m.rebuildBrowseList()
		case albumItem:
			m.openAlbum(item.album)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.browseList, cmd = m.browseList.Update(msg)
	return m, cmd
}

func (m *Model) handlePhotoListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = BrowseView
		return m, nil
	case "enter":
		if item, ok := m.photoList.SelectedItem().(photoItem); ok {
			m.selectedPhoto = item.photo
			m.view = PhotoInfoView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.photoList, cmd = m.photoList.Update(msg)
	return m, cmd
}

func (m *Model) handlePhotoInfoKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = PhotoListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case BrowseView:
		m.browseList, cmd = m.browseList.Update(msg)
	case PhotoListView:
		m.photoList, cmd = m.photoList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		if err := m.store.Reload(); err != nil {
			return libraryLoadedMsg{err: err}
		}
		return libraryLoadedMsg{lib: m.store.Library()}
	}
}

func (m *Model) renderBrowse() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.reload, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.browseList.View(), helpView)
}

func (m *Model) renderPhotoList() string {
	infoKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	)
	helpKeys := []key.Binding{infoKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.photoList.View(), helpView)
}

func (m *Model) renderPhotoInfo() string {
	photo := m.selectedPhoto
	if photo == nil {
		return styles.err.Render("No photo selected\n\nPress esc to go back")
	}

	title := styles.title.Render(photoItem{photo: photo}.Title())

	var b strings.Builder
	fmt.Fprintf(&b, "UUID:  %s\n", photo.UUID)
	fmt.Fprintf(&b, "Realm: %s\n", photo.Realm)
	if photo.Date != "" {
		fmt.Fprintf(&b, "Date:  %s\n", photo.Date)
	}
	if photo.Width > 0 && photo.Height > 0 {
		fmt.Fprintf(&b, "Size:  %dx%d\n", photo.Width, photo.Height)
	}
	if photo.Place != "" {
		fmt.Fprintf(&b, "Place: %s\n", photo.Place)
	}
	if len(photo.Persons) > 0 {
		fmt.Fprintf(&b, "People: %s\n", strings.Join(photo.Persons, ", "))
	}
	if len(photo.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(photo.Keywords, ", "))
	}
	if photo.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", photo.Description)
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}
