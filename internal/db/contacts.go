// Copyright (c) 2026 Livetable Team
// Livetable - server-rendered data tables
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/toeirei/livetable/internal/host"
	"github.com/toeirei/livetable/internal/model"
	"github.com/toeirei/livetable/internal/table"
	"github.com/uptrace/bun"
)

// ContactsTable is the demo table created by the migrations.
const ContactsTable = "contacts"

// ContactModel maps a row of the contacts table.
type ContactModel struct {
	bun.BaseModel `bun:"table:contacts"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Name          string    `bun:"name"`
	Email         string    `bun:"email"`
	Company       string    `bun:"company"`
	City          string    `bun:"city"`
	Active        bool      `bun:"active"`
	Balance       float64   `bun:"balance"`
	CreatedAt     time.Time `bun:"created_at"`
}

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Dennis", "Margaret", "Alan", "Frances", "Edsger"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Thompson", "Liskov", "Ritchie", "Hamilton", "Turing", "Allen", "Dijkstra"}
	companies  = []string{"Initech", "Globex", "Umbrella", "Hooli", "Vandelay"}
	cities     = []string{"Berlin", "Hamburg", "Vienna", "Zurich", "Amsterdam", "Oslo", "Lisbon"}
)

// Contacts returns n deterministic demo contacts starting at seq offset.
func Contacts(offset, n int, now time.Time) []ContactModel {
	out := make([]ContactModel, 0, n)
	for i := offset; i < offset+n; i++ {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames))%len(lastNames)]
		out = append(out, ContactModel{
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Company:   companies[i%len(companies)],
			City:      cities[i%len(cities)],
			Active:    i%4 != 0,
			Balance:   float64((i*7919)%100000) / 100,
			CreatedAt: now.Add(-time.Duration(i) * 36 * time.Hour).UTC().Truncate(time.Second),
		})
	}
	return out
}

// SeedContacts inserts n demo contacts in one statement.
func SeedContacts(ctx context.Context, bdb bun.IDB, offset, n int) error {
	if n <= 0 {
		return nil
	}
	batch := Contacts(offset, n, time.Now())
	if _, err := bdb.NewInsert().Model(&batch).Exec(ctx); err != nil {
		return fmt.Errorf("seed contacts: %w", MapDBError(err))
	}
	return nil
}

// ContactsDefinition describes a table over the demo contacts.
func ContactsDefinition() host.Definition {
	return host.Definition{
		Name:   ContactsTable,
		Title:  "Contacts",
		Source: "db",
		Columns: []model.Column{
			{Attribute: "id", Heading: "ID", Sortable: true},
			{Heading: "Name", Sortable: true, Searchable: true},
			{Heading: "Email", Searchable: true},
			{Heading: "Company", Sortable: true, Searchable: true},
			{Heading: "City", Sortable: true, Searchable: true},
			{Heading: "Active", Format: "bool"},
			{Heading: "Balance", Sortable: true, Format: "number", Options: map[string]string{"decimals": "2"}},
			{Attribute: "created_at", Heading: "Created", Sortable: true, Format: "relative"},
		},
		Checkbox:      true,
		SortAttribute: "id",
		RowClasses: []table.ClassRule{
			{Attribute: "active", Equals: "0", Class: "text-muted"},
			{Attribute: "active", Equals: "false", Class: "text-muted"},
		},
	}
}
