package bench

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/benz9527/xlinear/lib/infra"
	"github.com/benz9527/xlinear/xlog"
)

// resultRecord is the row layout of a Result.
type resultRecord struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	Suite      string `gorm:"size:16;index:idx_suite_phase"`
	Phase      string `gorm:"size:16;index:idx_suite_phase"`
	Repeat     int64
	ElapsedNs  int64
	RSSBytes   int64
	FinishedAt time.Time
}

func (resultRecord) TableName() string {
	return "bench_results"
}

func newResultRecord(res Result) resultRecord {
	return resultRecord{
		Suite:      string(res.Suite),
		Phase:      string(res.Phase),
		Repeat:     res.Repeat,
		ElapsedNs:  res.Elapsed.Nanoseconds(),
		RSSBytes:   int64(res.RSSBytes),
		FinishedAt: res.FinishedAt,
	}
}

func (rec resultRecord) result() Result {
	return Result{
		Suite:      Kind(rec.Suite),
		Phase:      Phase(rec.Phase),
		Repeat:     rec.Repeat,
		Elapsed:    time.Duration(rec.ElapsedNs),
		RSSBytes:   uint64(rec.RSSBytes),
		FinishedAt: rec.FinishedAt,
	}
}

var _ Sink = (*GormSink)(nil)

// GormSink persists the results into a SQL database through gorm.
type GormSink struct {
	db *gorm.DB
}

// NewGormSink opens the SQLite database at dsn and migrates the result
// table.
func NewGormSink(dsn string, logger xlog.XLogger) (*GormSink, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: xlog.NewGormXLogger(logger,
			xlog.WithGormXLoggerLogLevel(glogger.Warn),
			xlog.WithGormXLoggerSlowThreshold(time.Second),
		),
	})
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] open sqlite "+dsn)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] sqlite pool")
	}
	// One connection keeps an in-memory database alive for the whole run.
	sqlDB.SetMaxOpenConns(1)
	if err = db.AutoMigrate(&resultRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] migrate")
	}
	return &GormSink{db: db}, nil
}

// NewGormSinkWithDB writes through an already opened and migrated db.
func NewGormSinkWithDB(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Write(ctx context.Context, results []Result) error {
	if s.db == nil {
		return ErrSinkClosed
	}
	if len(results) == 0 {
		return nil
	}
	records := make([]resultRecord, 0, len(results))
	for _, res := range results {
		records = append(records, newResultRecord(res))
	}
	if err := s.db.WithContext(ctx).CreateInBatches(records, 100).Error; err != nil {
		return infra.WrapErrorStackWithMessage(err, "[bench] gorm write")
	}
	return nil
}

// Load returns the stored results of suite, all suites when empty, in
// insertion order.
func (s *GormSink) Load(ctx context.Context, suite Kind) ([]Result, error) {
	if s.db == nil {
		return nil, ErrSinkClosed
	}
	var records []resultRecord
	tx := s.db.WithContext(ctx).Order("id")
	if suite != "" {
		tx = tx.Where("suite = ?", string(suite))
	}
	if err := tx.Find(&records).Error; err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "[bench] gorm load")
	}
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, rec.result())
	}
	return results, nil
}

func (s *GormSink) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
