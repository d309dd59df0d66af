/*
Package book provides the PostgreSQL implementation for the library's data access.

It utilizes advanced Postgres features to deliver a high-performance discovery experience:
  - Full-Text Search: Uses 'websearch_to_tsquery' over title and description.
  - Scalar Subqueries: Reduces engagement rows (likes, ratings, viewer flags)
    per book row in a single round-trip, avoiding N+1 fan-out.
  - Window Functions: Calculates total result counts without a separate 'COUNT' query.
  - ACID Transactions: Chapter reconciliation and cascade deletes are atomic.

The repository follows an "Aggregate" pattern where chapters are managed
through the book repository instance to maintain domain integrity.
*/
package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librohive/api/internal/platform/database/schema"
	"github.com/librohive/api/internal/platform/dberr"
	"github.com/librohive/api/pkg/uuid"
)

// # PostgreSQL Repository

// bookRepository implements the [BookRepository] interface using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository constructs a PostgreSQL backed book store.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

// # Query Fragments

// engagementColumns builds the scalar-subquery SELECT fragment shared by
// every list-shaped query. The viewer placeholder is injected by ordinal
// so callers control argument numbering.
func engagementColumns(viewerArg int) string {
	return fmt.Sprintf(`
		a.%s, COALESCE(a.%s, ''), a.%s,
		(SELECT COUNT(*) FROM %s l WHERE l.%s = b.%s),
		(SELECT COUNT(*) FROM %s cm WHERE cm.%s = b.%s),
		(SELECT COALESCE(array_agg(r.%s), '{}') FROM %s r WHERE r.%s = b.%s),
		EXISTS(SELECT 1 FROM %s WHERE %s = b.%s AND %s = $%d),
		EXISTS(SELECT 1 FROM %s WHERE %s = b.%s AND %s = $%d),
		EXISTS(SELECT 1 FROM %s WHERE %s = b.%s AND %s = $%d),
		(SELECT %s FROM %s WHERE %s = b.%s AND %s = $%d),
		(SELECT COUNT(*) FROM %s ch WHERE ch.%s = b.%s),
		(SELECT COUNT(*) FROM %s p WHERE p.%s = b.%s AND p.%s = $%d AND p.%s >= 100)`,
		schema.UserAccount.ID, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.SocialBookLike.Table, schema.SocialBookLike.BookID, schema.CoreBook.ID,
		schema.SocialComment.Table, schema.SocialComment.BookID, schema.CoreBook.ID,
		schema.SocialRating.Score, schema.SocialRating.Table, schema.SocialRating.BookID, schema.CoreBook.ID,
		schema.SocialBookLike.Table, schema.SocialBookLike.BookID, schema.CoreBook.ID, schema.SocialBookLike.UserID, viewerArg,
		schema.SocialBookSave.Table, schema.SocialBookSave.BookID, schema.CoreBook.ID, schema.SocialBookSave.UserID, viewerArg,
		schema.LibraryBookmark.Table, schema.LibraryBookmark.BookID, schema.CoreBook.ID, schema.LibraryBookmark.UserID, viewerArg,
		schema.SocialRating.Score, schema.SocialRating.Table, schema.SocialRating.BookID, schema.CoreBook.ID, schema.SocialRating.UserID, viewerArg,
		schema.CoreChapter.Table, schema.CoreChapter.BookID, schema.CoreBook.ID,
		schema.LibraryReadingProgress.Table, schema.LibraryReadingProgress.BookID, schema.CoreBook.ID,
		schema.LibraryReadingProgress.UserID, viewerArg, schema.LibraryReadingProgress.Progress,
	)
}

// nullableViewer converts an optional viewer identity into its SQL
// parameter. Anonymous readers pass a typed NULL, since an empty string
// is not valid input for the uuid columns the viewer is compared against.
func nullableViewer(viewerID string) any {
	if viewerID == "" {
		return nil
	}
	return viewerID
}

// bookColumns is the core entity column list, aliased to b.
func bookColumns() string {
	columns := schema.CoreBook.Columns()
	for i, column := range columns {
		columns[i] = "b." + column
	}
	return strings.Join(columns, ", ")
}

// scanListRow hydrates one list-shaped row into raw detail fields.
// The column order must mirror bookColumns + engagementColumns.
func scanListRow(rows pgx.Rows, withTotal bool) (*RawDetails, int, error) {
	raw := &RawDetails{}
	var totalCount int
	var scores []int32

	targets := []any{
		&raw.Book.ID, &raw.Book.AuthorID, &raw.Book.Title, &raw.Book.Slug,
		&raw.Book.Description, &raw.Book.CoverURL, &raw.Book.Tags,
		&raw.Book.IsPublished, &raw.Book.ViewCount, &raw.Book.RatingAvg,
		&raw.Book.RatingCount, &raw.Book.CreatedAt, &raw.Book.UpdatedAt,
	}
	if withTotal {
		targets = append(targets, &totalCount)
	}
	targets = append(targets,
		&raw.Author.ID, &raw.Author.Name, &raw.Author.AvatarURL,
		&raw.LikeCount, &raw.CommentCount, &scores,
		&raw.ViewerLiked, &raw.ViewerSaved, &raw.ViewerBookmarked,
		&raw.ViewerRating, &raw.ChapterCount, &raw.ViewerCompleted,
	)

	if err := rows.Scan(targets...); err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to scan book row: %w", err)
	}

	raw.RatingScores = make([]int, len(scores))
	for i, score := range scores {
		raw.RatingScores[i] = int(score)
	}

	return raw, totalCount, nil
}

// # Discovery Queries

/*
List returns a filtered, paginated slice of view models and the total count.

Description: This high-performance query utilizes several PostgreSQL
features:
  - Window Function: COUNT(*) OVER() retrieves the total without a second query.
  - Scalar Subqueries: Engagement scalars are reduced per row in the same
    round-trip, already scoped to the requesting viewer.
  - Array Operators: Tag filtering uses the && overlap operator on text[].

Parameters:
  - context: context.Context
  - filter: Filter (Search, tags, author, sorting)
  - viewerID: string
  - limit: int
  - offset: int

Returns:
  - []*BookWithDetails: Slice of presentation-ready view models
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *bookRepository) List(context context.Context, filter Filter, viewerID string, limit, offset int) ([]*BookWithDetails, int, error) {

	// Query build initialization. $1 is always the viewer.
	var queryBuilder strings.Builder
	args := []any{nullableViewer(viewerID)}
	argID := 2

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count, %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		WHERE a.%s IS NULL`,
		bookColumns(),
		engagementColumns(1),
		schema.CoreBook.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreBook.AuthorID,
		schema.UserAccount.DeletedAt,
	))

	// Visibility: drafts only surface for their own author.
	if filter.PublishedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = TRUE", schema.CoreBook.IsPublished))
	} else {
		queryBuilder.WriteString(fmt.Sprintf(" AND (b.%s = TRUE OR b.%s = $1)", schema.CoreBook.IsPublished, schema.CoreBook.AuthorID))
	}

	// Author scoping (profile pages)
	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", schema.CoreBook.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	// Tag filtering (overlap semantics: any requested tag matches)
	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s && $%d::text[]", schema.CoreBook.Tags, argID))
		args = append(args, filter.Tags)
		argID++
	}

	// Search Query Filtering
	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND to_tsvector('simple', b.%s || ' ' || b.%s) @@ websearch_to_tsquery('simple', $%d)",
			schema.CoreBook.Title, schema.CoreBook.Description, argID,
		))
		args = append(args, filter.Query)
		argID++
	}

	// Apply Sorting Logic
	sort := fmt.Sprintf("b.%s", schema.CoreBook.CreatedAt) // default: latest
	switch filter.Sort {
	case "popular":
		sort = fmt.Sprintf("b.%s", schema.CoreBook.ViewCount)
	case "rating":
		sort = fmt.Sprintf("b.%s", schema.CoreBook.RatingAvg)
	case "az", "za":
		sort = fmt.Sprintf("b.%s", schema.CoreBook.Title)
	}

	// Apply Sorting Direction
	sortDir := "DESC"
	if strings.ToLower(filter.SortDir) == "asc" || filter.Sort == "az" {
		sortDir = "ASC"
	}
	if filter.Sort == "za" {
		sortDir = "DESC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s NULLS LAST, b.%s DESC", sort, sortDir, schema.CoreBook.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*BookWithDetails
	var totalCount int

	for rows.Next() {
		raw, total, err := scanListRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
		books = append(books, BuildDetails(*raw))
	}

	return books, totalCount, rows.Err()
}

/*
ListTrending returns published books ranked by view count.

Parameters:
  - context: context.Context
  - viewerID: string
  - limit: int

Returns:
  - []*BookWithDetails: Ranked view models
  - error: Database execution errors
*/
func (repository *bookRepository) ListTrending(context context.Context, viewerID string, limit int) ([]*BookWithDetails, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		WHERE b.%s = TRUE AND a.%s IS NULL
		ORDER BY b.%s DESC, b.%s DESC
		LIMIT $2`,
		bookColumns(),
		engagementColumns(1),
		schema.CoreBook.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreBook.AuthorID,
		schema.CoreBook.IsPublished, schema.UserAccount.DeletedAt,
		schema.CoreBook.ViewCount, schema.CoreBook.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, nullableViewer(viewerID), limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list trending books: %w", err)
	}
	defer rows.Close()

	var books []*BookWithDetails
	for rows.Next() {
		raw, _, err := scanListRow(rows, false)
		if err != nil {
			return nil, err
		}
		books = append(books, BuildDetails(*raw))
	}

	return books, rows.Err()
}

/*
ListFeed returns recent published books from authors the viewer follows.

Parameters:
  - context: context.Context
  - viewerID: string
  - limit: int
  - offset: int

Returns:
  - []*BookWithDetails: Chronological view models
  - int: Total matching books
  - error: Database execution errors
*/
func (repository *bookRepository) ListFeed(context context.Context, viewerID string, limit, offset int) ([]*BookWithDetails, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count, %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		JOIN %s f ON f.%s = b.%s AND f.%s = $1
		WHERE b.%s = TRUE AND a.%s IS NULL
		ORDER BY b.%s DESC, b.%s DESC
		LIMIT $2 OFFSET $3`,
		bookColumns(),
		engagementColumns(1),
		schema.CoreBook.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreBook.AuthorID,
		schema.UserFollow.Table, schema.UserFollow.FollowingID, schema.CoreBook.AuthorID, schema.UserFollow.FollowerID,
		schema.CoreBook.IsPublished, schema.UserAccount.DeletedAt,
		schema.CoreBook.CreatedAt, schema.CoreBook.ID,
	)

	rows, err := repository.pool.Query(context, query, nullableViewer(viewerID), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list feed: %w", err)
	}
	defer rows.Close()

	var books []*BookWithDetails
	var totalCount int

	for rows.Next() {
		raw, total, err := scanListRow(rows, true)
		if err != nil {
			return nil, 0, err
		}
		totalCount = total
		books = append(books, BuildDetails(*raw))
	}

	return books, totalCount, rows.Err()
}

// # Detail Queries

/*
FindDetails returns the raw detail rows for a book by primary key.

Description: Runs the list-shaped engagement query for the single row,
then hydrates chapters and the viewer's per-chapter progress with two
follow-up queries. Three round-trips keep each statement simple while
still bounding the fan-out to a constant.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - viewerID: string

Returns:
  - *RawDetails: Entity plus unreduced engagement rows
  - error: ErrNotFound if missing
*/
func (repository *bookRepository) FindDetails(context context.Context, id, viewerID string) (*RawDetails, error) {
	return repository.findDetailsWhere(context, schema.CoreBook.ID, id, viewerID)
}

/*
FindDetailsBySlug resolves a book through its unique SEO identifier.

Parameters:
  - context: context.Context
  - slug: string
  - viewerID: string

Returns:
  - *RawDetails: Entity plus unreduced engagement rows
  - error: ErrNotFound if missing
*/
func (repository *bookRepository) FindDetailsBySlug(context context.Context, slug, viewerID string) (*RawDetails, error) {
	return repository.findDetailsWhere(context, schema.CoreBook.Slug, slug, viewerID)
}

// findDetailsWhere is the shared single-book lookup keyed by one column.
func (repository *bookRepository) findDetailsWhere(context context.Context, column, value, viewerID string) (*RawDetails, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM %s b
		JOIN %s a ON a.%s = b.%s
		WHERE b.%s = $2`,
		bookColumns(),
		engagementColumns(1),
		schema.CoreBook.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreBook.AuthorID,
		column,
	)

	rows, err := repository.pool.Query(context, query, nullableViewer(viewerID), value)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to find book: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find book")
	}

	raw, _, err := scanListRow(rows, false)
	if err != nil {
		return nil, err
	}
	rows.Close()

	// Chapter hydration
	raw.Chapters, err = repository.listChapters(context, raw.Book.ID)
	if err != nil {
		return nil, err
	}

	// Viewer progress hydration
	raw.ViewerProgress, err = repository.viewerProgress(context, raw.Book.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return raw, nil
}

/*
FindByID returns the bare book row without engagement joins.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Book: The core entity
  - error: ErrNotFound if missing
*/
func (repository *bookRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s b WHERE b.%s = $1`,
		bookColumns(), schema.CoreBook.Table, schema.CoreBook.ID)

	book := &Book{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&book.ID, &book.AuthorID, &book.Title, &book.Slug,
		&book.Description, &book.CoverURL, &book.Tags,
		&book.IsPublished, &book.ViewCount, &book.RatingAvg,
		&book.RatingCount, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find book")
	}

	return book, nil
}

// listChapters returns all chapters for a book ordered by ordinal.
func (repository *bookRepository) listChapters(context context.Context, bookID string) ([]Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.Title,
		schema.CoreChapter.Content, schema.CoreChapter.Ordinal,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.Table,
		schema.CoreChapter.BookID,
		schema.CoreChapter.Ordinal,
	)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []Chapter
	for rows.Next() {
		var chapter Chapter
		err := rows.Scan(
			&chapter.ID, &chapter.BookID, &chapter.Title, &chapter.Content,
			&chapter.Ordinal, &chapter.CreatedAt, &chapter.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

// viewerProgress returns the viewer's persisted per-chapter percentages.
func (repository *bookRepository) viewerProgress(context context.Context, bookID, viewerID string) (map[string]int, error) {
	if viewerID == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingProgress.ChapterID, schema.LibraryReadingProgress.Progress,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.BookID, schema.LibraryReadingProgress.UserID,
	)

	rows, err := repository.pool.Query(context, query, bookID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to load reading progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]int)
	for rows.Next() {
		var chapterID string
		var pct int
		if err := rows.Scan(&chapterID, &pct); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan progress row: %w", err)
		}
		progress[chapterID] = pct
	}

	return progress, rows.Err()
}

/*
FindChapter returns a single chapter row by primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Chapter: The content row
  - error: ErrNotFound if missing
*/
func (repository *bookRepository) FindChapter(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.Title,
		schema.CoreChapter.Content, schema.CoreChapter.Ordinal,
		schema.CoreChapter.CreatedAt, schema.CoreChapter.UpdatedAt,
		schema.CoreChapter.Table, schema.CoreChapter.ID,
	)

	chapter := &Chapter{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&chapter.ID, &chapter.BookID, &chapter.Title, &chapter.Content,
		&chapter.Ordinal, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find chapter")
	}

	return chapter, nil
}

// # Mutations

/*
Create persists a new book and its initial chapters in one transaction.

Parameters:
  - context: context.Context
  - book: *Book
  - chapters: []ChapterInput

Returns:
  - error: Storage or constraint failures
*/
func (repository *bookRepository) Create(context context.Context, book *Book, chapters []ChapterInput) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	insertBook := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		schema.CoreBook.Table,
		schema.CoreBook.ID, schema.CoreBook.AuthorID, schema.CoreBook.Title,
		schema.CoreBook.Slug, schema.CoreBook.Description, schema.CoreBook.CoverURL,
		schema.CoreBook.Tags, schema.CoreBook.IsPublished,
		schema.CoreBook.CreatedAt, schema.CoreBook.UpdatedAt,
	)

	err = tx.QueryRow(context, insertBook,
		book.ID, book.AuthorID, book.Title, book.Slug,
		book.Description, book.CoverURL, book.Tags, book.IsPublished,
	).Scan(&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create book")
	}

	for _, chapter := range chapters {
		if err := insertChapter(context, tx, book.ID, chapter); err != nil {
			return err
		}
	}

	return tx.Commit(context)
}

// insertChapter adds one chapter row inside an open transaction.
func insertChapter(context context.Context, tx pgx.Tx, bookID string, chapter ChapterInput) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.CoreChapter.Table,
		schema.CoreChapter.ID, schema.CoreChapter.BookID, schema.CoreChapter.Title,
		schema.CoreChapter.Content, schema.CoreChapter.Ordinal,
	)

	if _, err := tx.Exec(context, query, uuid.New(), bookID, chapter.Title, chapter.Content, chapter.Ordinal); err != nil {
		return dberr.Wrap(err, "create chapter")
	}
	return nil
}

/*
Update persists metadata changes and reconciles chapters in place.

Description: Stored chapters are loaded and diffed against the incoming
set by ordinal inside one transaction:
  - Matching ordinals are patched, preserving the chapter's identity so
    progress and bookmark foreign keys stay valid across edits.
  - New ordinals are inserted.
  - Removed ordinals are deleted along with their dependent progress and
    bookmark rows, which would otherwise be orphaned.

Parameters:
  - context: context.Context
  - book: *Book
  - chapters: []ChapterInput

Returns:
  - error: Storage or constraint failures
*/
func (repository *bookRepository) Update(context context.Context, book *Book, chapters []ChapterInput) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	// Metadata update
	updateBook := fmt.Sprintf(`
		UPDATE %s SET
			%s = COALESCE(NULLIF($2, ''), %s),
			%s = COALESCE(NULLIF($3, ''), %s),
			%s = $4,
			%s = COALESCE($5, %s),
			%s = NOW()
		WHERE %s = $1`,
		schema.CoreBook.Table,
		schema.CoreBook.Title, schema.CoreBook.Title,
		schema.CoreBook.Description, schema.CoreBook.Description,
		schema.CoreBook.Tags,
		schema.CoreBook.CoverURL, schema.CoreBook.CoverURL,
		schema.CoreBook.UpdatedAt,
		schema.CoreBook.ID,
	)

	tag, err := tx.Exec(context, updateBook, book.ID, book.Title, book.Description, book.Tags, book.CoverURL)
	if err != nil {
		return dberr.Wrap(err, "update book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "update book")
	}

	// Load existing ordinals for the diff.
	existing := map[int]string{} // ordinal -> chapter ID
	listQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CoreChapter.ID, schema.CoreChapter.Ordinal,
		schema.CoreChapter.Table, schema.CoreChapter.BookID)

	rows, err := tx.Query(context, listQuery, book.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to list chapters for diff: %w", err)
	}
	for rows.Next() {
		var id string
		var ordinal int
		if err := rows.Scan(&id, &ordinal); err != nil {
			rows.Close()
			return fmt.Errorf("postgres: failed to scan chapter for diff: %w", err)
		}
		existing[ordinal] = id
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("postgres: failed to list chapters for diff: %w", err)
	}

	// Patch or insert incoming chapters.
	patchChapter := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Title, schema.CoreChapter.Content,
		schema.CoreChapter.UpdatedAt, schema.CoreChapter.ID,
	)

	incoming := map[int]bool{}
	for _, chapter := range chapters {
		incoming[chapter.Ordinal] = true

		if chapterID, ok := existing[chapter.Ordinal]; ok {
			if _, err := tx.Exec(context, patchChapter, chapterID, chapter.Title, chapter.Content); err != nil {
				return dberr.Wrap(err, "update chapter")
			}
			continue
		}
		if err := insertChapter(context, tx, book.ID, chapter); err != nil {
			return err
		}
	}

	// Purge removed ordinals and their dependent rows.
	for ordinal, chapterID := range existing {
		if incoming[ordinal] {
			continue
		}
		purges := []string{
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryReadingProgress.Table, schema.LibraryReadingProgress.ChapterID),
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryBookmark.Table, schema.LibraryBookmark.ChapterID),
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.ChapterID),
			fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.ID),
		}
		for _, purge := range purges {
			if _, err := tx.Exec(context, purge, chapterID); err != nil {
				return dberr.Wrap(err, "delete chapter")
			}
		}
	}

	return tx.Commit(context)
}

/*
SetPublished flips the public visibility of a book.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - published: bool

Returns:
  - error: ErrNotFound if missing
*/
func (repository *bookRepository) SetPublished(context context.Context, id string, published bool) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.CoreBook.Table, schema.CoreBook.IsPublished,
		schema.CoreBook.UpdatedAt, schema.CoreBook.ID)

	tag, err := repository.pool.Exec(context, query, id, published)
	if err != nil {
		return dberr.Wrap(err, "publish book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "publish book")
	}

	return nil
}

// deleteCascadeStatements returns the dependent-row DELETEs for a book,
// each taking the book ID as $1, in foreign-key order: comment likes
// before the comments they reference, every dependent table before the
// book row itself.
func deleteCascadeStatements() []string {
	return []string{
		fmt.Sprintf(`DELETE FROM %s cl USING %s c WHERE cl.%s = c.%s AND c.%s = $1`,
			schema.SocialCommentLike.Table, schema.SocialComment.Table,
			schema.SocialCommentLike.CommentID, schema.SocialComment.ID, schema.SocialComment.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryReadingProgress.Table, schema.LibraryReadingProgress.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryBookmark.Table, schema.LibraryBookmark.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialBookLike.Table, schema.SocialBookLike.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialBookSave.Table, schema.SocialBookSave.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialRating.Table, schema.SocialRating.BookID),
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.BookID),
	}
}

/*
Delete removes a book and every dependent row in one transaction.

Description: Dependent tables are cleared in foreign-key order before the
book row itself. Comment likes go first since they reference comments.
Any failure rolls the whole cascade back, so a book is never left
half-deleted.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Transaction failures
*/
func (repository *bookRepository) Delete(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	for _, statement := range deleteCascadeStatements() {
		if _, err := tx.Exec(context, statement, id); err != nil {
			return dberr.Wrap(err, "delete book dependents")
		}
	}

	deleteBook := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreBook.Table, schema.CoreBook.ID)
	tag, err := tx.Exec(context, deleteBook, id)
	if err != nil {
		return dberr.Wrap(err, "delete book")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete book")
	}

	return tx.Commit(context)
}

/*
IncrementViewCount atomically bumps the view counter on a book.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Atomic update failure
*/
func (repository *bookRepository) IncrementViewCount(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1`,
		schema.CoreBook.Table, schema.CoreBook.ViewCount,
		schema.CoreBook.ViewCount, schema.CoreBook.ID)

	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "increment view count")
	}

	return nil
}
