package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/go-resty/resty/v2"
	"github.com/yourusername/ozon-stock-sync/config"
	"github.com/yourusername/ozon-stock-sync/internal/domain/apperror"
	"github.com/yourusername/ozon-stock-sync/internal/domain/entity"
	"github.com/yourusername/ozon-stock-sync/internal/domain/repository"
	"go.uber.org/zap"
)

// DefaultMaxFeedBytes konfiguratsiyada chegara berilmaganda
const DefaultMaxFeedBytes int64 = 64 << 20

// ErrFeedTooLarge arxiv yoki undagi jadval chegaradan katta
var ErrFeedTooLarge = errors.New("stock feed exceeds size limit")

type loader struct {
	http     *resty.Client
	url      string
	fileName string
	workDir  string
	inMemory bool
	maxBytes int64
	parser   repository.FeedParser
	logger   *zap.Logger
}

// NewLoader qoldiqlar arxivini yuklovchi yaratish
func NewLoader(cfg *config.Config, parser repository.FeedParser, logger *zap.Logger) repository.StockFeedLoader {
	maxBytes := cfg.MaxFeedBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFeedBytes
	}

	return &loader{
		http: resty.New().
			SetTimeout(cfg.HTTPTimeout).
			SetResponseBodyLimit(int(maxBytes)),
		url:      cfg.StockFeedURL,
		fileName: cfg.StockFeedFile,
		workDir:  cfg.WorkDir,
		inMemory: cfg.FeedInMemory,
		maxBytes: maxBytes,
		parser:   parser,
		logger:   logger,
	}
}

// Load arxivni yuklab olish, jadvalni ajratib o'qish.
// Diskka yozilgan vaqtinchalik fayl har qanday natijada o'chiriladi.
func (l *loader) Load(ctx context.Context) ([]entity.FeedRow, error) {
	archive, err := l.download(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := l.findEntry(archive)
	if err != nil {
		return nil, err
	}

	var rows []entity.FeedRow
	if l.inMemory {
		rows, err = l.parseInMemory(ctx, entry)
	} else {
		rows, err = l.parseOnDisk(ctx, entry)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Info("stock feed loaded",
		zap.String("url", l.url),
		zap.Bool("in_memory", l.inMemory),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func (l *loader) download(ctx context.Context) ([]byte, error) {
	resp, err := l.http.R().SetContext(ctx).Get(l.url)
	if err != nil {
		if errors.Is(err, resty.ErrResponseBodyTooLarge) {
			return nil, apperror.Validation("download feed", fmt.Errorf("archive is larger than %d bytes: %w", l.maxBytes, ErrFeedTooLarge))
		}
		return nil, apperror.Network("download feed", err)
	}
	if resp.IsError() {
		return nil, apperror.HTTPStatus("download feed", resp.StatusCode(), resp.Status())
	}

	l.logger.Debug("feed archive downloaded", zap.Int("bytes", len(resp.Body())))
	return resp.Body(), nil
}

// findEntry arxivdagi kerakli fayl (papka ichida bo'lishi mumkin)
func (l *loader) findEntry(archive []byte) (*zip.File, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, apperror.Parse("extract feed", fmt.Errorf("failed to open archive: %w", err))
	}

	for _, f := range zr.File {
		if path.Base(f.Name) != l.fileName || f.FileInfo().IsDir() {
			continue
		}
		if f.UncompressedSize64 > uint64(l.maxBytes) {
			return nil, l.tooLarge(f.Name)
		}
		return f, nil
	}

	return nil, apperror.Parse("extract feed", fmt.Errorf("%s not found in archive", l.fileName))
}

// parseOnDisk jadvalni workDir ga chiqarib ParseFile bilan o'qish
func (l *loader) parseOnDisk(ctx context.Context, entry *zip.File) ([]entity.FeedRow, error) {
	target := filepath.Join(l.workDir, l.fileName)
	defer func() {
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			l.logger.Warn("failed to remove feed file", zap.String("path", target), zap.Error(err))
		}
	}()

	if err := l.writeEntry(entry, target); err != nil {
		return nil, err
	}

	rows, err := l.parser.ParseFile(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.fileName, err)
	}
	return rows, nil
}

// parseInMemory jadvalni xotiraga o'qib ParseBytes bilan o'qish
func (l *loader) parseInMemory(ctx context.Context, entry *zip.File) ([]entity.FeedRow, error) {
	var buf bytes.Buffer
	if err := l.copyEntry(&buf, entry); err != nil {
		return nil, err
	}

	rows, err := l.parser.ParseBytes(ctx, buf.Bytes(), l.fileName)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.fileName, err)
	}
	return rows, nil
}

func (l *loader) writeEntry(entry *zip.File, target string) error {
	dst, err := os.Create(target)
	if err != nil {
		return apperror.Parse("extract feed", fmt.Errorf("failed to create %s: %w", target, err))
	}

	if err := l.copyEntry(dst, entry); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return apperror.Parse("extract feed", fmt.Errorf("failed to write %s: %w", target, err))
	}
	return nil
}

// copyEntry arxiv yozuvini maxBytes dan oshirmasdan ko'chirish.
// Sarlavhadagi hajmga ishonilmaydi, haqiqiy o'qilgan baytlar sanaladi.
func (l *loader) copyEntry(dst io.Writer, entry *zip.File) error {
	src, err := entry.Open()
	if err != nil {
		return apperror.Parse("extract feed", fmt.Errorf("failed to open %s: %w", entry.Name, err))
	}
	defer src.Close()

	n, err := io.Copy(dst, io.LimitReader(src, l.maxBytes+1))
	if err != nil {
		return apperror.Parse("extract feed", fmt.Errorf("failed to read %s: %w", entry.Name, err))
	}
	if n > l.maxBytes {
		return l.tooLarge(entry.Name)
	}
	return nil
}

func (l *loader) tooLarge(name string) error {
	return apperror.Validation("extract feed", fmt.Errorf("%s is larger than %d bytes: %w", name, l.maxBytes, ErrFeedTooLarge))
}
