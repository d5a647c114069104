package navigation

import (
	"sidebard/internal/models"
	"strconv"
)

type FooterKind string

const (
	FooterPanel    FooterKind = "panel"
	FooterChecking FooterKind = "checking"
)

type Item struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Href     string `json:"href"`
	Selected bool   `json:"selected"`
	Ending   bool   `json:"ending"`
}

// Footer is what sits under the admin links: either the statistics and
// takeover panel for the loaded chat, or a placeholder while it loads.
type Footer struct {
	Kind          FooterKind             `json:"kind"`
	Statistics    *models.StatisticsView `json:"statistics,omitempty"`
	TakeoverLabel string                 `json:"takeoverLabel,omitempty"`
	Takeover      *models.TakeoverState  `json:"takeover,omitempty"`
}

type Section struct {
	Key       string  `json:"key"`
	Title     string  `json:"title"`
	MiniTitle string  `json:"miniTitle"`
	Loaded    bool    `json:"loaded"`
	Items     []Item  `json:"items"`
	Footer    *Footer `json:"footer,omitempty"`
}

type Sidebar struct {
	OnOwnerMenu bool     `json:"onOwnerMenu"`
	Admin       *Section `json:"admin,omitempty"`
	System      *Section `json:"system,omitempty"`
}

// Input is everything the sidebar is derived from.
type Input struct {
	Path       string
	Chats      models.ChatsState
	Statistics models.StatisticsView
	Takeover   models.TakeoverState
	HideAdmin  bool
}

type page struct {
	key   string
	title string
}

var chatPages = []page{
	{"scheme", "Scheme"},
	{"verifications", "Verifications"},
	{"operations", "Operations"},
	{"permissions", "Permissions"},
	{"custom", "Custom"},
}

var sysPages = []page{
	{"managements", "Managements"},
	{"logs", "Logs"},
}

const (
	LabelTakenOver    = "Taken over"
	LabelNotTakenOver = "Not taken over"
	LabelChecking     = "Checking…"
	LabelComputing    = "Computing"
)

// MenuBuilder builds sidebars. The owner flag is fixed at construction.
type MenuBuilder struct {
	owner bool
}

func NewMenuBuilder(owner bool) *MenuBuilder {
	return &MenuBuilder{owner: owner}
}

func (mb *MenuBuilder) Owner() bool {
	return mb.owner
}

// Build derives the sidebar. It keeps no state between calls.
func (mb *MenuBuilder) Build(in Input) Sidebar {
	onOwnerMenu := IsSysLink(in.Path, "")
	sidebar := Sidebar{OnOwnerMenu: onOwnerMenu}

	if !in.HideAdmin {
		sidebar.Admin = adminSection(in, onOwnerMenu)
	}
	if mb.owner {
		sidebar.System = systemSection(in.Path)
	}
	return sidebar
}

func ChatHref(chatID int64, page string) string {
	return ChatsPrefix + "/" + strconv.FormatInt(chatID, 10) + "/" + page
}

func adminSection(in Input, onOwnerMenu bool) *Section {
	items := make([]Item, 0, len(chatPages))
	for _, p := range chatPages {
		items = append(items, Item{
			Key:      p.key,
			Title:    p.title,
			Href:     ChatHref(in.Chats.Selected, p.key),
			Selected: IsSelect(p.key, in.Path),
		})
	}
	items[len(items)-1].Ending = onOwnerMenu

	section := &Section{
		Key:       "admin",
		Title:     "Admin menu",
		MiniTitle: "Menu",
		Loaded:    in.Chats.IsLoaded,
		Items:     items,
	}

	switch {
	case onOwnerMenu:
	case in.Chats.LoadedSelected != nil:
		stats := in.Statistics
		takeover := in.Takeover
		label := LabelNotTakenOver
		if in.Chats.LoadedSelected.IsTakeOver {
			label = LabelTakenOver
		}
		section.Footer = &Footer{
			Kind:          FooterPanel,
			Statistics:    &stats,
			TakeoverLabel: label,
			Takeover:      &takeover,
		}
	default:
		section.Footer = &Footer{Kind: FooterChecking}
	}
	return section
}

func systemSection(path string) *Section {
	items := make([]Item, 0, len(sysPages))
	for _, p := range sysPages {
		items = append(items, Item{
			Key:      p.key,
			Title:    p.title,
			Href:     SysPrefix + "/" + p.key,
			Selected: IsSysLink(path, p.key),
		})
	}
	return &Section{
		Key:       "system",
		Title:     "System menu",
		MiniTitle: "System",
		Loaded:    true,
		Items:     items,
	}
}
