package output

import "github.com/yndnr/linearcli/internal/core/domain"

// Icon points a launcher item at an image on disk.
type Icon struct {
	Path string `json:"path" yaml:"path"`
}

// Item is one launcher result row.
type Item struct {
	UID      string `json:"uid" yaml:"uid"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Arg      string `json:"arg" yaml:"arg"`
	Icon     *Icon  `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// ItemList is the document every list and search command prints.
type ItemList struct {
	Items []Item  `json:"items" yaml:"items"`
	Query *string `json:"query,omitempty" yaml:"query,omitempty"`
}

// Table renders the list as UID/TITLE/SUBTITLE/ARG columns.
func (l ItemList) Table() *Table {
	t := &Table{Headers: []string{"UID", "TITLE", "SUBTITLE", "ARG"}}
	for _, it := range l.Items {
		t.AddRow(it.UID, it.Title, orDash(it.Subtitle), it.Arg)
	}
	return t
}

func newList(n int) ItemList {
	return ItemList{Items: make([]Item, 0, n)}
}

// TeamItems lists teams; the arg is the team id.
func TeamItems(teams []domain.Team) ItemList {
	l := newList(len(teams))
	for _, t := range teams {
		l.Items = append(l.Items, Item{UID: t.ID, Title: t.Name, Arg: t.ID})
	}
	return l
}

// ProjectItems lists projects; the arg is the project id.
func ProjectItems(projects []domain.Project) ItemList {
	l := newList(len(projects))
	for _, p := range projects {
		l.Items = append(l.Items, Item{UID: p.ID, Title: p.Name, Arg: p.ID})
	}
	return l
}

// ProjectSlugItems lists projects; the arg is the project slug.
func ProjectSlugItems(projects []domain.Project) ItemList {
	l := newList(len(projects))
	for _, p := range projects {
		l.Items = append(l.Items, Item{UID: p.ID, Title: p.Name, Arg: p.SlugID})
	}
	return l
}

// UserItems lists users with their cached avatar path. Every user gets an
// icon entry whether or not an avatar was downloaded.
func UserItems(users []domain.User, iconPath func(userID string) string) ItemList {
	l := newList(len(users))
	for _, u := range users {
		l.Items = append(l.Items, Item{
			UID:   u.ID,
			Title: u.Name,
			Arg:   u.ID,
			Icon:  &Icon{Path: iconPath(u.ID)},
		})
	}
	return l
}

// IssueItems lists search results and echoes the query.
func IssueItems(issues []domain.Issue, query string) ItemList {
	l := newList(len(issues))
	for _, i := range issues {
		l.Items = append(l.Items, Item{
			UID:      i.ID,
			Title:    i.Title,
			Subtitle: i.Subtitle(),
			Arg:      i.Identifier,
		})
	}
	l.Query = &query
	return l
}
