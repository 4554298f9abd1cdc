package usecase

import (
	"bytes"
	"context"
	"io"
	"iter"
	"strconv"
	"time"

	"github.com/hytech-racing/car-search-webserver/internal/database/repository"
	"github.com/hytech-racing/car-search-webserver/internal/metrics"
	"github.com/hytech-racing/car-search-webserver/internal/models"
	"github.com/hytech-racing/car-search-webserver/internal/s3"
	"github.com/hytech-racing/car-search-webserver/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "github.com/hytech-racing/car-search-webserver/internal/database/usecase"

// ExportArchive stores a copy of every export payload.
type ExportArchive interface {
	WriteObjectReader(ctx context.Context, reader io.Reader, objectName string, contentType string) error
}

// ExportNotifier announces produced exports.
type ExportNotifier interface {
	PublishExport(ctx context.Context, event models.ExportEvent) error
}

type CarSearchUseCase struct {
	carRepo  repository.CarRepository
	logger   *zap.Logger
	now      func() time.Time
	archive  ExportArchive
	notifier ExportNotifier
}

type CarSearchOption func(*CarSearchUseCase)

// WithClock replaces time.Now as the source of export timestamps.
func WithClock(now func() time.Time) CarSearchOption {
	return func(uc *CarSearchUseCase) { uc.now = now }
}

func WithArchive(archive ExportArchive) CarSearchOption {
	return func(uc *CarSearchUseCase) { uc.archive = archive }
}

func WithNotifier(notifier ExportNotifier) CarSearchOption {
	return func(uc *CarSearchUseCase) { uc.notifier = notifier }
}

func NewCarSearchUseCase(carRepo repository.CarRepository, logger *zap.Logger, opts ...CarSearchOption) *CarSearchUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &CarSearchUseCase{
		carRepo: carRepo,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SearchCars returns a lazy sequence of the cars matching every field set on criteria.
// Nothing is read from the store until the sequence is ranged over.
func (uc *CarSearchUseCase) SearchCars(ctx context.Context, criteria *models.CarSearchCriteria) iter.Seq2[models.CarModel, error] {
	filter := models.NewCarFilter(criteria)
	return func(yield func(models.CarModel, error) bool) {
		for car, err := range uc.carRepo.FindCars(ctx, filter) {
			if !yield(car, err) || err != nil {
				return
			}
		}
	}
}

// FindCars materializes SearchCars, keeping store order. The result is never nil.
func (uc *CarSearchUseCase) FindCars(ctx context.Context, criteria *models.CarSearchCriteria) ([]models.CarModel, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CarSearchUseCase.FindCars")
	defer span.End()

	filter := models.NewCarFilter(criteria)
	span.SetAttributes(attribute.Int("car_search.predicates", filter.Len()))

	cars := make([]models.CarModel, 0)
	for car, err := range uc.SearchCars(ctx, criteria) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "car search failed")
			return nil, err
		}
		cars = append(cars, car)
	}

	span.SetAttributes(attribute.Int("car_search.results", len(cars)))
	metrics.SearchResults.Observe(float64(len(cars)))
	uc.logger.Debug("car search finished",
		zap.Int("predicates", filter.Len()),
		zap.Int("results", len(cars)),
	)

	return cars, nil
}

func (uc *CarSearchUseCase) ExportToXml(cars []models.CarModel) (string, error) {
	return ExportToXml(cars)
}

// ConstructFileName builds the export file name for criteria stamped with the current time.
func (uc *CarSearchUseCase) ConstructFileName(criteria *models.CarSearchCriteria) string {
	return ConstructFileName(criteria, uc.now())
}

// Export runs the search and packages the matching cars as an XML file.
// Archiving and notification are best effort: their failures are logged and
// never fail the export.
func (uc *CarSearchUseCase) Export(ctx context.Context, criteria *models.CarSearchCriteria) (*models.ExportResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CarSearchUseCase.Export")
	defer span.End()

	cars, err := uc.FindCars(ctx, criteria)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export search failed")
		return nil, err
	}

	xmlText, err := uc.ExportToXml(cars)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "xml export failed")
		return nil, err
	}

	exportedAt := uc.now()
	content := []byte(xmlText)
	checksum, err := utils.CreateHash(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	result := &models.ExportResult{
		Content:     content,
		ContentType: models.XmlContentType,
		FileName:    ConstructFileName(criteria, exportedAt),
		Count:       len(cars),
		Checksum:    checksum,
	}

	if uc.archive != nil {
		key := s3.ExportObjectKey(result.FileName, exportedAt)
		if err := uc.archive.WriteObjectReader(ctx, bytes.NewReader(content), key, result.ContentType); err != nil {
			uc.logger.Warn("could not archive export", zap.String("file_name", result.FileName), zap.Error(err))
		} else {
			result.ArchiveKey = key
		}
	}

	if uc.notifier != nil {
		event := models.ExportEvent{
			FileName:   result.FileName,
			Count:      result.Count,
			Checksum:   result.Checksum,
			ArchiveKey: result.ArchiveKey,
			ExportedAt: exportedAt,
		}
		if criteria != nil {
			event.Criteria = *criteria
		}
		if err := uc.notifier.PublishExport(ctx, event); err != nil {
			uc.logger.Warn("could not publish export event", zap.String("file_name", result.FileName), zap.Error(err))
		}
	}

	span.SetAttributes(
		attribute.String("car_export.file_name", result.FileName),
		attribute.Int("car_export.count", result.Count),
	)
	metrics.ExportsTotal.WithLabelValues(strconv.FormatBool(result.ArchiveKey != "")).Inc()
	uc.logger.Info("cars exported",
		zap.String("file_name", result.FileName),
		zap.Int("count", result.Count),
		zap.String("archive_key", result.ArchiveKey),
	)

	return result, nil
}
