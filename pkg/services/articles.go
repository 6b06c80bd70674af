package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"orailix-site/pkg/models"
)

const (
	// Manifest dates are year-day-month, e.g. 2024-31-01.
	ManifestDateLayout = "2006-2-1"
	DisplayDateLayout  = "Jan 02, 2006"
)

// SkipReason tells why an article folder produced no article.
type SkipReason string

const (
	SkipNone       SkipReason = ""
	SkipNoManifest SkipReason = "no_manifest"
	SkipNoTitle    SkipReason = "no_title"
	SkipBadDate    SkipReason = "bad_date"
)

// ScanResult is the outcome for one article folder: either Article is set,
// or Skip says why not and Err carries the cause.
type ScanResult struct {
	Category string
	Folder   string
	Article  *models.Article
	Skip     SkipReason
	Err      error
}

// ScanReport collects every ScanResult of one scan, plus the directories
// that could not be listed at all.
type ScanReport struct {
	Results   []ScanResult
	DirErrors []error
}

// Articles returns the articles of the report, in scan order.
func (r ScanReport) Articles() []models.Article {
	articles := make([]models.Article, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Article != nil {
			articles = append(articles, *res.Article)
		}
	}
	return articles
}

// Skipped returns the results that produced no article.
func (r ScanReport) Skipped() []ScanResult {
	var skipped []ScanResult
	for _, res := range r.Results {
		if res.Article == nil {
			skipped = append(skipped, res)
		}
	}
	return skipped
}

type ListerOptions struct {
	NewsDir          string // category/article tree on disk
	URLPrefix        string // URL the tree is served under, e.g. /news
	PlaceholderImage string
	ManifestName     string
}

// ArticleLister turns the news directory into article listings. It holds no
// mutable state, so one instance serves concurrent requests.
type ArticleLister struct {
	opts ListerOptions
}

func NewArticleLister(opts ListerOptions) *ArticleLister {
	opts.URLPrefix = "/" + strings.Trim(opts.URLPrefix, "/")
	return &ArticleLister{opts: opts}
}

// List scans the tree, keeps the requested categories, sorts newest first and
// applies the limit. The report describes everything that was left out.
func (l *ArticleLister) List(q ListQuery) ([]models.Article, ScanReport) {
	report := l.Scan(q)
	articles := report.Articles()
	SortArticles(articles)
	if q.Limit >= 0 && q.Limit < len(articles) {
		articles = articles[:q.Limit]
	}
	return articles, report
}

// Scan walks news/<category>/<article>/ for the categories q includes. An
// unreadable news directory gives an empty report with one DirError.
func (l *ArticleLister) Scan(q ListQuery) ScanReport {
	var report ScanReport

	categories, err := os.ReadDir(l.opts.NewsDir)
	if err != nil {
		report.DirErrors = append(report.DirErrors, err)
		return report
	}

	for _, categoryEntry := range categories {
		category := categoryEntry.Name()
		categoryPath := filepath.Join(l.opts.NewsDir, category)
		if !isDir(categoryPath, categoryEntry) || !q.Includes(category) {
			continue
		}

		folders, err := os.ReadDir(categoryPath)
		if err != nil {
			report.DirErrors = append(report.DirErrors, err)
			continue
		}

		for _, folderEntry := range folders {
			folderPath := filepath.Join(categoryPath, folderEntry.Name())
			if !isDir(folderPath, folderEntry) {
				continue
			}
			report.Results = append(report.Results, l.scanFolder(category, folderEntry.Name()))
		}
	}
	return report
}

func (l *ArticleLister) scanFolder(category, folder string) ScanResult {
	res := ScanResult{Category: category, Folder: folder}
	dir := filepath.Join(l.opts.NewsDir, category, folder)

	manifest, err := ReadManifest(dir, l.opts.ManifestName)
	if err != nil {
		res.Err = err
		if errors.Is(err, ErrNoTitle) {
			res.Skip = SkipNoTitle
		} else {
			res.Skip = SkipNoManifest
		}
		return res
	}

	published, err := time.Parse(ManifestDateLayout, manifest.Date)
	if err != nil {
		res.Skip = SkipBadDate
		res.Err = fmt.Errorf("%w %q: %v", ErrBadDate, manifest.Date, err)
		return res
	}

	link, picture := l.resolveLinks(category, folder, manifest)
	res.Article = &models.Article{
		Title:         manifest.Title,
		Date:          manifest.Date,
		FormattedDate: published.Format(DisplayDateLayout),
		PictureURL:    picture,
		Category:      category,
		Link:          link,
		Published:     published,
	}
	return res
}

// resolveLinks returns the article link and picture URL. External pages are
// trusted as they are; local pictures must exist on disk or the placeholder
// is used instead.
func (l *ArticleLister) resolveLinks(category, folder string, m models.Manifest) (string, string) {
	if m.Page != "" {
		return m.Page, m.Picture
	}

	base := path.Join(l.opts.URLPrefix, category, folder)
	link := base + "/"

	if strings.HasPrefix(m.Picture, "http") {
		return link, m.Picture
	}

	if m.Picture == "" {
		return link, l.opts.PlaceholderImage
	}
	onDisk := SafeJoin(filepath.Join(l.opts.NewsDir, category, folder), "", m.Picture)
	if onDisk == "" {
		return link, l.opts.PlaceholderImage
	}
	if info, err := os.Stat(onDisk); err != nil || info.IsDir() {
		return link, l.opts.PlaceholderImage
	}
	return link, base + "/" + m.Picture
}

// SortArticles orders newest first. Articles published the same day keep
// their relative order.
func SortArticles(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Published.After(articles[j].Published)
	})
}

func isDir(p string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
