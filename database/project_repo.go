package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/vibehub/showcase-backend/models"
	"github.com/vibehub/showcase-backend/ranking"
)

// Sort modes accepted by the listing endpoint.
const (
	SortTrending = "trending"
	SortLatest   = "latest"
	SortPopular  = "popular"
	SortFeatured = "featured"
)

const DefaultPageLimit = 6

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// ProjectFilter carries the listing parameters after the handler has applied
// its defaults. ViewerID 0 is the anonymous viewer.
type ProjectFilter struct {
	Tag            string
	Tool           string
	Search         string
	AuthorUsername string
	ViewerID       uint
	Sort           string
	Page           int
	Limit          int
}

// ProjectPage is the listing response envelope.
type ProjectPage struct {
	Projects []models.ProjectCard `json:"projects"`
	HasMore  bool                 `json:"hasMore"`
	Total    int64                `json:"total"`
}

func emptyPage() *ProjectPage {
	return &ProjectPage{Projects: []models.ProjectCard{}, HasMore: false, Total: 0}
}

// List runs the full discovery pipeline: resolve filters to predicates, count
// with the same predicates, sort (trending ranks the whole candidate set
// before pagination), page, then enrich.
//
// A tag or author filter that does not resolve returns an empty page rather
// than silently ignoring the filter.
func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) (*ProjectPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Sort == "" {
		f.Sort = SortTrending
	}

	var tagID uint
	if f.Tag != "" {
		tag, err := r.resolveTag(ctx, f.Tag)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return emptyPage(), nil
		}
		tagID = tag.ID
	}

	var authorID uint
	if f.AuthorUsername != "" {
		var author models.User
		err := r.db.WithContext(ctx).Where("username = ?", f.AuthorUsername).First(&author).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyPage(), nil
		}
		if err != nil {
			return nil, err
		}
		authorID = author.ID
	}

	// scoped builds a fresh query with the full predicate set. The count and
	// the data query must share these predicates exactly.
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Project{}).
			Where("is_private = ? OR author_id = ?", false, f.ViewerID)
		if tagID != 0 {
			q = q.Where("projects.id IN (?)",
				r.db.Model(&models.ProjectTag{}).Select("project_id").Where("tag_id = ?", tagID))
		}
		if f.Tool != "" {
			q = q.Where("LOWER(vibe_coding_tool) = ?", strings.ToLower(f.Tool))
		}
		if f.Search != "" {
			needle := "%" + strings.ToLower(f.Search) + "%"
			q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
		}
		if authorID != 0 {
			q = q.Where("author_id = ?", authorID)
		}
		if f.Sort == SortFeatured {
			q = q.Where("featured = ?", true)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (f.Page - 1) * f.Limit

	var rows []models.Project
	switch f.Sort {
	case SortTrending:
		ids, err := r.trendingOrder(ctx, scoped(), time.Now())
		if err != nil {
			return nil, err
		}
		if offset < len(ids) {
			end := offset + f.Limit
			if end > len(ids) {
				end = len(ids)
			}
			rows, err = r.fetchInOrder(ctx, ids[offset:end])
			if err != nil {
				return nil, err
			}
		}
	case SortPopular:
		if err := scoped().Order("views_count DESC, created_at DESC").
			Offset(offset).Limit(f.Limit).Find(&rows).Error; err != nil {
			return nil, err
		}
	default: // latest and featured both order by creation
		if err := scoped().Order("created_at DESC").
			Offset(offset).Limit(f.Limit).Find(&rows).Error; err != nil {
			return nil, err
		}
	}

	cards, err := r.Enrich(ctx, rows, f.ViewerID)
	if err != nil {
		return nil, err
	}

	return &ProjectPage{
		Projects: cards,
		HasMore:  int64(offset+len(rows)) < total,
		Total:    total,
	}, nil
}

// trendingOrder scores every project matching the scoped predicates and
// returns their ids in descending score order. Ranking the full candidate set
// before pagination keeps page 1 ahead of page 2; ties keep query order
// (stable sort).
func (r *ProjectRepo) trendingOrder(ctx context.Context, scoped *gorm.DB, now time.Time) ([]uint, error) {
	var candidates []ranking.Candidate
	err := scoped.
		Select("projects.id AS project_id, projects.created_at AS created_at, COALESCE(project_views.count, 0) AS monthly_views").
		Joins("LEFT JOIN project_views ON project_views.project_id = projects.id AND project_views.month = ? AND project_views.year = ?",
			int(now.Month()), now.Year()).
		Order("projects.created_at DESC").
		Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	ranking.SortByTrending(candidates, now)

	ids := make([]uint, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ProjectID
	}
	return ids, nil
}

// fetchInOrder loads full rows for the given ids and restores the ids' order,
// which an IN query does not preserve.
func (r *ProjectRepo) fetchInOrder(ctx context.Context, ids []uint) ([]models.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var unordered []models.Project
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&unordered).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Project, len(unordered))
	for _, p := range unordered {
		byID[p.ID] = p
	}
	ordered := make([]models.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (r *ProjectRepo) resolveTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("name = ?", strings.ToLower(name)).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByID returns the enriched project, or nil when it does not exist or is
// private and the viewer is not its author. Callers treat nil as 404 either
// way, so private projects are indistinguishable from absent ones.
func (r *ProjectRepo) FindByID(ctx context.Context, id uint, viewerID uint) (*models.ProjectCard, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !project.VisibleTo(viewerID) {
		return nil, nil
	}

	cards, err := r.Enrich(ctx, []models.Project{project}, viewerID)
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// FindFeatured returns the currently featured project, or nil when none is
// set (or the featured one is private to this viewer).
func (r *ProjectRepo) FindFeatured(ctx context.Context, viewerID uint) (*models.ProjectCard, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Where("is_private = ? OR author_id = ?", false, viewerID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cards, err := r.Enrich(ctx, []models.Project{project}, viewerID)
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// Trending returns the top-limit projects by trending score, no pagination
// envelope.
func (r *ProjectRepo) Trending(ctx context.Context, viewerID uint, limit int) ([]models.ProjectCard, error) {
	if limit < 1 {
		limit = DefaultPageLimit
	}

	scoped := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("is_private = ? OR author_id = ?", false, viewerID)

	ids, err := r.trendingOrder(ctx, scoped, time.Now())
	if err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}

	rows, err := r.fetchInOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	return r.Enrich(ctx, rows, viewerID)
}

// Add inserts a project together with its tags and gallery images in one
// transaction. Tag names are deduplicated case-insensitively and created on
// first use.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project, tagNames []string, gallery []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if err := attachTags(tx, project.ID, tagNames); err != nil {
			return err
		}
		for i, url := range gallery {
			img := models.GalleryImage{ProjectID: project.ID, ImageURL: url, Position: i}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update saves the project row and, when tagNames is non-nil, replaces its
// tag set in the same transaction.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(project).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		return attachTags(tx, project.ID, tagNames)
	})
}

// Delete removes a project and every dependent row: tags, gallery, bookmarks,
// views, comments with their replies, and likes on all three levels.
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("project_id = ?", id)
		replyIDs := tx.Model(&models.CommentReply{}).Select("id").Where("comment_id IN (?)", commentIDs)

		if err := tx.Where("reply_id IN (?)", replyIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentReply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectView{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.GalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// Feature marks one project featured and unfeatures every other in the same
// transaction, keeping the single-featured invariant.
func (r *ProjectRepo) Feature(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Project{}).Where("featured = ?", true).
			Update("featured", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Project{}).Where("id = ?", id).
			Update("featured", true).Error
	})
}

// IncrementShare bumps the share counter and returns the new value.
func (r *ProjectRepo) IncrementShare(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", id).
			Update("shares_count", gorm.Expr("shares_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Project{}).Where("id = ?", id).
			Select("shares_count").Scan(&count).Error
	})
	return count, err
}

type countRow struct {
	ID uint
	N  int64
}

// Enrich decorates a page of raw project rows with tags, engagement counts
// and the viewer's like/bookmark flags. The lookups are batched per page and
// run concurrently; the incoming row order is preserved in the result.
func (r *ProjectRepo) Enrich(ctx context.Context, rows []models.Project, viewerID uint) ([]models.ProjectCard, error) {
	if len(rows) == 0 {
		return []models.ProjectCard{}, nil
	}

	ids := make([]uint, len(rows))
	authorIDs := make([]uint, 0, len(rows))
	seenAuthors := make(map[uint]bool, len(rows))
	for i, p := range rows {
		ids[i] = p.ID
		if !seenAuthors[p.AuthorID] {
			seenAuthors[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	var (
		authors       = map[uint]models.Author{}
		tags          = map[uint][]string{}
		likeCounts    = map[uint]int64{}
		commentCounts = map[uint]int64{}
		liked         = map[uint]bool{}
		bookmarked    = map[uint]bool{}
		gallery       = map[uint][]string{}
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var users []models.User
		if err := r.db.WithContext(gctx).Where("id IN ?", authorIDs).Find(&users).Error; err != nil {
			return err
		}
		for _, u := range users {
			authors[u.ID] = u.AsAuthor()
		}
		return nil
	})

	g.Go(func() error {
		type tagRow struct {
			ProjectID uint
			Name      string
		}
		var trs []tagRow
		err := r.db.WithContext(gctx).Model(&models.ProjectTag{}).
			Select("project_tags.project_id, tags.name").
			Joins("JOIN tags ON tags.id = project_tags.tag_id").
			Where("project_tags.project_id IN ?", ids).
			Order("tags.name").
			Scan(&trs).Error
		if err != nil {
			return err
		}
		for _, tr := range trs {
			tags[tr.ProjectID] = append(tags[tr.ProjectID], ranking.CanonicalTagName(tr.Name))
		}
		return nil
	})

	g.Go(func() error {
		var counts []countRow
		err := r.db.WithContext(gctx).Model(&models.Like{}).
			Select("project_id AS id, COUNT(*) AS n").
			Where("project_id IN ?", ids).
			Group("project_id").
			Scan(&counts).Error
		if err != nil {
			return err
		}
		for _, c := range counts {
			likeCounts[c.ID] = c.N
		}
		return nil
	})

	g.Go(func() error {
		var counts []countRow
		err := r.db.WithContext(gctx).Model(&models.Comment{}).
			Select("project_id AS id, COUNT(*) AS n").
			Where("project_id IN ?", ids).
			Group("project_id").
			Scan(&counts).Error
		if err != nil {
			return err
		}
		for _, c := range counts {
			commentCounts[c.ID] = c.N
		}
		return nil
	})

	g.Go(func() error {
		var imgs []models.GalleryImage
		err := r.db.WithContext(gctx).
			Where("project_id IN ?", ids).
			Order("position").
			Find(&imgs).Error
		if err != nil {
			return err
		}
		for _, img := range imgs {
			gallery[img.ProjectID] = append(gallery[img.ProjectID], img.ImageURL)
		}
		return nil
	})

	// Viewer id 0 never matches a stored row; skip the lookups entirely so
	// the anonymous flags stay false.
	if viewerID != 0 {
		g.Go(func() error {
			var rows []models.Like
			err := r.db.WithContext(gctx).
				Where("user_id = ? AND project_id IN ?", viewerID, ids).
				Find(&rows).Error
			if err != nil {
				return err
			}
			for _, l := range rows {
				if l.ProjectID != nil {
					liked[*l.ProjectID] = true
				}
			}
			return nil
		})

		g.Go(func() error {
			var rows []models.Bookmark
			err := r.db.WithContext(gctx).
				Where("user_id = ? AND project_id IN ?", viewerID, ids).
				Find(&rows).Error
			if err != nil {
				return err
			}
			for _, b := range rows {
				bookmarked[b.ProjectID] = true
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make([]models.ProjectCard, len(rows))
	for i, p := range rows {
		projectTags := tags[p.ID]
		if projectTags == nil {
			projectTags = []string{}
		}
		cards[i] = models.ProjectCard{
			Project:       p,
			Author:        authors[p.AuthorID],
			Tags:          projectTags,
			LikesCount:    likeCounts[p.ID],
			CommentsCount: commentCounts[p.ID],
			IsLiked:       liked[p.ID],
			IsBookmarked:  bookmarked[p.ID],
			Gallery:       gallery[p.ID],
		}
	}
	return cards, nil
}

// attachTags links the given names to a project inside tx, creating unseen
// tags under their lowercase identity.
func attachTags(tx *gorm.DB, projectID uint, tagNames []string) error {
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		var tag models.Tag
		err := tx.Where("name = ?", normalized).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: normalized}
			if err := tx.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		link := models.ProjectTag{ProjectID: projectID, TagID: tag.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}
