// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/database/schema"
	"github.com/taibuivan/newsdesk/internal/platform/dberr"
	"github.com/taibuivan/newsdesk/pkg/query"
	"github.com/taibuivan/newsdesk/pkg/slice"
)

// PostgresRepository implements [Repository] on the news schema.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a repository over an open pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var (
	entryColumns    = strings.Join(schema.NewsEntry.Columns("e"), ", ")
	categoryColumns = strings.Join(schema.NewsCategory.Columns("c"), ", ")
)

// # Listing

func (repository *PostgresRepository) ListEntries(ctx context.Context, filter Filter, limit, offset int) ([]*Entry, int, error) {
	where := entryConditions(filter)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s e%s`, schema.NewsEntry.Table, where.SQL())

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_entries")
	}

	listQuery := fmt.Sprintf(`SELECT %s FROM %s e%s ORDER BY e.%s DESC NULLS LAST, e.%s DESC`,
		entryColumns, schema.NewsEntry.Table, where.SQL(), schema.NewsEntry.PubDate, schema.NewsEntry.ID,
	) + where.Paginate(limit, offset)

	rows, err := repository.db.Query(ctx, listQuery, where.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_entries")
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "scan_entries")
	}

	if err := repository.attach(ctx, entries); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// entryConditions translates a [Filter] into SQL over the alias "e".
func entryConditions(filter Filter) *query.Builder {
	where := query.New()

	if filter.Language != "" || filter.PublishedOnly {
		titles := fmt.Sprintf(`EXISTS (SELECT 1 FROM %s t WHERE t.%s = e.%s`,
			schema.NewsEntryTitle.Table, schema.NewsEntryTitle.EntryID, schema.NewsEntry.ID)
		if filter.Language != "" {
			titles += fmt.Sprintf(` AND t.%s = %s`, schema.NewsEntryTitle.Language, where.Arg(filter.Language))
		}
		if filter.PublishedOnly {
			titles += fmt.Sprintf(` AND t.%s`, schema.NewsEntryTitle.IsPublished)
		}
		where.Add(titles + ")")
	}

	if filter.PublishedOnly {
		where.Add(fmt.Sprintf(`(e.%s IS NULL OR e.%s <= %s)`,
			schema.NewsEntry.PubDate, schema.NewsEntry.PubDate, where.Arg(filter.Now)))
	}

	if filter.ExcludeHidden {
		where.Add(fmt.Sprintf(`NOT EXISTS (SELECT 1 FROM %s ec JOIN %s c ON c.%s = ec.%s WHERE ec.%s = e.%s AND c.%s)`,
			schema.NewsEntryCategory.Table, schema.NewsCategory.Table,
			schema.NewsCategory.ID, schema.NewsEntryCategory.CategoryID,
			schema.NewsEntryCategory.EntryID, schema.NewsEntry.ID, schema.NewsCategory.HideOnList))
	}

	if filter.CategorySlug != "" {
		slug := where.Arg(filter.CategorySlug)
		where.Add(fmt.Sprintf(`EXISTS (SELECT 1 FROM %s ec JOIN %s c ON c.%s = ec.%s LEFT JOIN %s p ON p.%s = c.%s WHERE ec.%s = e.%s AND (c.%s = %s OR p.%s = %s))`,
			schema.NewsEntryCategory.Table, schema.NewsCategory.Table,
			schema.NewsCategory.ID, schema.NewsEntryCategory.CategoryID,
			schema.NewsCategory.Table, schema.NewsCategory.ID, schema.NewsCategory.ParentID,
			schema.NewsEntryCategory.EntryID, schema.NewsEntry.ID,
			schema.NewsCategory.Slug, slug, schema.NewsCategory.Slug, slug))
	}

	if filter.AuthorID != "" {
		where.Add(fmt.Sprintf(`e.%s = %s`, schema.NewsEntry.AuthorID, where.Arg(filter.AuthorID)))
	}

	return where
}

// # Single Entry

func (repository *PostgresRepository) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s e WHERE e.%s = $1`, entryColumns, schema.NewsEntry.Table, schema.NewsEntry.ID)
	return repository.getOne(ctx, "get_entry", query, id)
}

func (repository *PostgresRepository) GetEntryBySlug(ctx context.Context, language, slug string) (*Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s e
		JOIN %s t ON t.%s = e.%s
		WHERE t.%s = $1 AND t.%s = $2`,
		entryColumns, schema.NewsEntry.Table,
		schema.NewsEntryTitle.Table, schema.NewsEntryTitle.EntryID, schema.NewsEntry.ID,
		schema.NewsEntryTitle.Language, schema.NewsEntryTitle.Slug,
	)
	return repository.getOne(ctx, "get_entry_by_slug", query, language, slug)
}

func (repository *PostgresRepository) getOne(ctx context.Context, action, query string, args ...any) (*Entry, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	entry, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Entry")
		}
		return nil, dberr.Wrap(err, action)
	}

	if err := repository.attach(ctx, []*Entry{entry}); err != nil {
		return nil, err
	}
	return entry, nil
}

func scanEntry(row pgx.CollectableRow) (*Entry, error) {
	entry := &Entry{}
	err := row.Scan(&entry.ID, &entry.AuthorID, &entry.AuthorName, &entry.PubDate, &entry.ImageURL, &entry.CreatedAt, &entry.UpdatedAt)
	return entry, err
}

// attach loads translations and categories for entries in two queries.
func (repository *PostgresRepository) attach(ctx context.Context, entries []*Entry) error {
	if len(entries) == 0 {
		return nil
	}

	ids := slice.Map(entries, func(entry *Entry) int64 { return entry.ID })
	byID := make(map[int64]*Entry, len(entries))
	for _, entry := range entries {
		entry.Translations = []Translation{}
		entry.Categories = []Category{}
		byID[entry.ID] = entry
	}

	titleQuery := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		schema.NewsEntryTitle.EntryID, schema.NewsEntryTitle.Language, schema.NewsEntryTitle.Title,
		schema.NewsEntryTitle.Slug, schema.NewsEntryTitle.IsPublished,
		schema.NewsEntryTitle.Table, schema.NewsEntryTitle.EntryID, schema.NewsEntryTitle.Language,
	)

	rows, err := repository.db.Query(ctx, titleQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "list_entry_titles")
	}
	defer rows.Close()

	for rows.Next() {
		var entryID int64
		var translation Translation
		if err := rows.Scan(&entryID, &translation.Language, &translation.Title, &translation.Slug, &translation.IsPublished); err != nil {
			return dberr.Wrap(err, "scan_entry_title")
		}
		byID[entryID].Translations = append(byID[entryID].Translations, translation)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "list_entry_titles")
	}

	categoryQuery := fmt.Sprintf(`SELECT ec.%s, %s FROM %s ec JOIN %s c ON c.%s = ec.%s WHERE ec.%s = ANY($1) ORDER BY c.%s`,
		schema.NewsEntryCategory.EntryID, categoryColumns,
		schema.NewsEntryCategory.Table, schema.NewsCategory.Table,
		schema.NewsCategory.ID, schema.NewsEntryCategory.CategoryID,
		schema.NewsEntryCategory.EntryID, schema.NewsCategory.Name,
	)

	categoryRows, err := repository.db.Query(ctx, categoryQuery, ids)
	if err != nil {
		return dberr.Wrap(err, "list_entry_categories")
	}
	defer categoryRows.Close()

	for categoryRows.Next() {
		var entryID int64
		var category Category
		if err := categoryRows.Scan(&entryID, &category.ID, &category.Name, &category.Slug, &category.ParentID, &category.HideOnList); err != nil {
			return dberr.Wrap(err, "scan_entry_category")
		}
		byID[entryID].Categories = append(byID[entryID].Categories, category)
	}
	return dberr.Wrap(categoryRows.Err(), "list_entry_categories")
}

// # Writes

func (repository *PostgresRepository) CreateEntry(ctx context.Context, entry *Entry, categoryIDs []int64) error {
	return pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING %s, %s, %s`,
			schema.NewsEntry.Table, schema.NewsEntry.AuthorID, schema.NewsEntry.AuthorName,
			schema.NewsEntry.PubDate, schema.NewsEntry.ImageURL, schema.NewsEntry.CreatedAt, schema.NewsEntry.UpdatedAt,
			schema.NewsEntry.ID, schema.NewsEntry.CreatedAt, schema.NewsEntry.UpdatedAt,
		)

		err := tx.QueryRow(ctx, query, entry.AuthorID, entry.AuthorName, entry.PubDate, entry.ImageURL).
			Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_entry")
		}

		return writeChildren(ctx, tx, entry, categoryIDs)
	})
}

func (repository *PostgresRepository) UpdateEntry(ctx context.Context, entry *Entry, categoryIDs []int64) error {
	return pgx.BeginFunc(ctx, repository.db, func(tx pgx.Tx) error {
		query := fmt.Sprintf(`
			UPDATE %s SET %s = $2, %s = $3, %s = NOW()
			WHERE %s = $1
			RETURNING %s, %s, %s, %s`,
			schema.NewsEntry.Table, schema.NewsEntry.PubDate, schema.NewsEntry.ImageURL, schema.NewsEntry.UpdatedAt,
			schema.NewsEntry.ID,
			schema.NewsEntry.AuthorID, schema.NewsEntry.AuthorName, schema.NewsEntry.CreatedAt, schema.NewsEntry.UpdatedAt,
		)

		err := tx.QueryRow(ctx, query, entry.ID, entry.PubDate, entry.ImageURL).
			Scan(&entry.AuthorID, &entry.AuthorName, &entry.CreatedAt, &entry.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("Entry")
			}
			return dberr.Wrap(err, "update_entry")
		}

		for _, table := range []struct{ name, column string }{
			{schema.NewsEntryTitle.Table, schema.NewsEntryTitle.EntryID},
			{schema.NewsEntryCategory.Table, schema.NewsEntryCategory.EntryID},
		} {
			if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.name, table.column), entry.ID); err != nil {
				return dberr.Wrap(err, "clear_entry_children")
			}
		}

		return writeChildren(ctx, tx, entry, categoryIDs)
	})
}

// writeChildren inserts translations and category links of entry in one batch.
func writeChildren(ctx context.Context, tx pgx.Tx, entry *Entry, categoryIDs []int64) error {
	batch := &pgx.Batch{}

	titleInsert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		schema.NewsEntryTitle.Table, schema.NewsEntryTitle.EntryID, schema.NewsEntryTitle.Language,
		schema.NewsEntryTitle.Title, schema.NewsEntryTitle.Slug, schema.NewsEntryTitle.IsPublished)
	for _, translation := range entry.Translations {
		batch.Queue(titleInsert, entry.ID, translation.Language, translation.Title, translation.Slug, translation.IsPublished)
	}

	categoryInsert := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.NewsEntryCategory.Table, schema.NewsEntryCategory.EntryID, schema.NewsEntryCategory.CategoryID)
	for _, categoryID := range categoryIDs {
		batch.Queue(categoryInsert, entry.ID, categoryID)
	}

	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return dberr.Wrap(err, "write_entry_children")
	}
	return nil
}

func (repository *PostgresRepository) DeleteEntry(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.NewsEntry.Table, schema.NewsEntry.ID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_entry")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}
	return nil
}

func (repository *PostgresRepository) SetPublished(ctx context.Context, id int64, language string, published bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND ($3::text = '' OR %s = $3)`,
		schema.NewsEntryTitle.Table, schema.NewsEntryTitle.IsPublished,
		schema.NewsEntryTitle.EntryID, schema.NewsEntryTitle.Language)

	cmd, err := repository.db.Exec(ctx, query, id, published, language)
	if err != nil {
		return dberr.Wrap(err, "set_entry_published")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}
	return nil
}

// # Categories & Authors

func (repository *PostgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c ORDER BY c.%s`, categoryColumns, schema.NewsCategory.Table, schema.NewsCategory.Name)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[Category])
	return categories, dberr.Wrap(err, "scan_categories")
}

func (repository *PostgresRepository) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s c WHERE c.%s = $1`, categoryColumns, schema.NewsCategory.Table, schema.NewsCategory.Slug)

	rows, err := repository.db.Query(ctx, query, slug)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category")
	}

	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[Category])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Category")
	}
	return category, dberr.Wrap(err, "get_category")
}

func (repository *PostgresRepository) AuthorName(ctx context.Context, authorID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT 1`,
		schema.NewsEntry.AuthorName, schema.NewsEntry.Table, schema.NewsEntry.AuthorID, schema.NewsEntry.CreatedAt)

	var name string
	err := repository.db.QueryRow(ctx, query, authorID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperr.NotFound("Author")
	}
	return name, dberr.Wrap(err, "get_author_name")
}
