package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

// ArticlePatch holds optional article fields; on create Title and Description are required.
type ArticlePatch struct {
	Title       *string
	Description *string
	Content     *string
	URL         *string
	IconName    *string
	Color       *string
	Category    *string
	IsPublished *bool
}

type JobPatch struct {
	Title           *string
	Description     *string
	Difficulty      *model.Difficulty
	PayRange        *string
	TimeCommitment  *string
	Tags            *[]string
	FullDescription *string
	Requirements    *[]string
	HowToStart      *string
	IsPublished     *bool
}

func checkArticle(a *model.Article) error {
	return errors.Join(
		maxLen("Title", a.Title, model.TitleMaxLen),
		maxLen("URL", a.URL, model.URLMaxLen),
		maxLen("Icon name", a.IconName, model.ShortFieldMaxLen),
		maxLen("Color", a.Color, model.ColorMaxLen),
		maxLen("Category", a.Category, model.CategoryMaxLen),
	)
}

func checkJob(j *model.Job) error {
	return errors.Join(
		maxLen("Title", j.Title, model.TitleMaxLen),
		maxLen("Pay range", j.PayRange, model.ShortFieldMaxLen),
		maxLen("Time commitment", j.TimeCommitment, model.ShortFieldMaxLen),
	)
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func orDefault(p *string, def string) string {
	if v := str(p); v != "" {
		return v
	}
	return def
}

func setIf(dst *string, p *string) {
	if p != nil {
		*dst = *p
	}
}

func listOrEmpty(p *[]string) []string {
	if p == nil || *p == nil {
		return []string{}
	}
	return *p
}

type ArticleService struct {
	repo *mysql.ArticleRepository
}

func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{repo: &mysql.ArticleRepository{DB: db}}
}

func (s *ArticleService) List(ctx context.Context) ([]model.Article, error) {
	list, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if list == nil {
		list = []model.Article{}
	}
	return list, nil
}

func (s *ArticleService) Create(ctx context.Context, actor Actor, in ArticlePatch) (*model.Article, error) {
	if str(in.Title) == "" || str(in.Description) == "" {
		return nil, pkg.Validation("Title and description are required")
	}
	a := &model.Article{
		Title:       str(in.Title),
		Description: str(in.Description),
		Content:     str(in.Content),
		URL:         str(in.URL),
		IconName:    orDefault(in.IconName, model.DefaultArticleIcon),
		Color:       orDefault(in.Color, model.DefaultArticleColor),
		Category:    orDefault(in.Category, model.DefaultArticleCategory),
		IsPublished: in.IsPublished == nil || *in.IsPublished,
		CreatedBy:   actor.ID,
	}
	if err := checkArticle(a); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

func (s *ArticleService) Update(ctx context.Context, id uint64, in ArticlePatch) (*model.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Article not found")
	}
	setIf(&a.Title, in.Title)
	setIf(&a.Description, in.Description)
	setIf(&a.Content, in.Content)
	setIf(&a.URL, in.URL)
	setIf(&a.IconName, in.IconName)
	setIf(&a.Color, in.Color)
	setIf(&a.Category, in.Category)
	if in.IsPublished != nil {
		a.IsPublished = *in.IsPublished
	}
	if blank(a.Title) || blank(a.Description) {
		return nil, pkg.Validation("Title and description are required")
	}
	if err := checkArticle(a); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Article not found")
	}
	return nil
}

// SeedDefaults inserts the curated articles that are not present yet, by title.
func (s *ArticleService) SeedDefaults(ctx context.Context, adminID uint64) (int, error) {
	n := 0
	for _, a := range defaultArticles() {
		exists, err := s.repo.ExistsByTitle(ctx, a.Title)
		if err != nil {
			return n, fmt.Errorf("check article %q: %w", a.Title, err)
		}
		if exists {
			continue
		}
		a.CreatedBy = adminID
		a.IsPublished = true
		if err := s.repo.Create(ctx, &a); err != nil {
			return n, fmt.Errorf("seed article %q: %w", a.Title, err)
		}
		n++
	}
	return n, nil
}

type JobService struct {
	repo *mysql.JobRepository
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{repo: &mysql.JobRepository{DB: db}}
}

func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	list, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	if list == nil {
		list = []model.Job{}
	}
	return list, nil
}

func (s *JobService) Create(ctx context.Context, actor Actor, in JobPatch) (*model.Job, error) {
	if str(in.Title) == "" || str(in.Description) == "" || str(in.PayRange) == "" || str(in.TimeCommitment) == "" {
		return nil, pkg.Validation("Title, description, pay range, and time commitment are required")
	}
	difficulty := model.DifficultyEasy
	if in.Difficulty != nil && *in.Difficulty != "" {
		difficulty = *in.Difficulty
	}
	if !difficulty.Valid() {
		return nil, pkg.Validation("Difficulty must be Easy, Medium or Hard")
	}
	j := &model.Job{
		Title:           str(in.Title),
		Description:     str(in.Description),
		Difficulty:      difficulty,
		PayRange:        str(in.PayRange),
		TimeCommitment:  str(in.TimeCommitment),
		Tags:            listOrEmpty(in.Tags),
		FullDescription: str(in.FullDescription),
		Requirements:    listOrEmpty(in.Requirements),
		HowToStart:      str(in.HowToStart),
		IsPublished:     in.IsPublished == nil || *in.IsPublished,
		CreatedBy:       actor.ID,
	}
	if err := checkJob(j); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}

func (s *JobService) Update(ctx context.Context, id uint64, in JobPatch) (*model.Job, error) {
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Job not found")
	}
	setIf(&j.Title, in.Title)
	setIf(&j.Description, in.Description)
	setIf(&j.PayRange, in.PayRange)
	setIf(&j.TimeCommitment, in.TimeCommitment)
	setIf(&j.FullDescription, in.FullDescription)
	setIf(&j.HowToStart, in.HowToStart)
	if in.Difficulty != nil {
		if !in.Difficulty.Valid() {
			return nil, pkg.Validation("Difficulty must be Easy, Medium or Hard")
		}
		j.Difficulty = *in.Difficulty
	}
	if in.Tags != nil {
		j.Tags = listOrEmpty(in.Tags)
	}
	if in.Requirements != nil {
		j.Requirements = listOrEmpty(in.Requirements)
	}
	if in.IsPublished != nil {
		j.IsPublished = *in.IsPublished
	}
	if blank(j.Title) || blank(j.Description) || blank(j.PayRange) || blank(j.TimeCommitment) {
		return nil, pkg.Validation("Title, description, pay range, and time commitment are required")
	}
	if err := checkJob(j); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, j); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

func (s *JobService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Job not found")
	}
	return nil
}

// SeedDefaults inserts the curated job ideas that are not present yet, by title.
func (s *JobService) SeedDefaults(ctx context.Context, adminID uint64) (int, error) {
	n := 0
	for _, j := range defaultJobs() {
		exists, err := s.repo.ExistsByTitle(ctx, j.Title)
		if err != nil {
			return n, fmt.Errorf("check job %q: %w", j.Title, err)
		}
		if exists {
			continue
		}
		j.CreatedBy = adminID
		j.IsPublished = true
		if err := s.repo.Create(ctx, &j); err != nil {
			return n, fmt.Errorf("seed job %q: %w", j.Title, err)
		}
		n++
	}
	return n, nil
}
