package stats_test

import (
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	issueDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/issue"
	"github.com/opencivic/civic-reporter/internal/stats"
)

var _ = Describe("Stats Repository", func() {
	var (
		gormDB  *gorm.DB
		service *stats.Service
	)

	insertIssue := func(id, status, location string, lat, lng *float64) {
		err := gormDB.Create(&issueDatamodel.Issue{
			ID:          id,
			UserID:      "U1",
			Description: "d",
			Category:    "Other",
			Location:    location,
			Latitude:    lat,
			Longitude:   lng,
			Status:      status,
		}).Error
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		gormDB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = gormDB.AutoMigrate(&issueDatamodel.Issue{})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := gormDB.DB()
		Expect(err).NotTo(HaveOccurred())

		repo := stats.NewRepository(sqlx.NewDb(sqlDB, "sqlite3"))
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = stats.NewService(repo, testLogger)
	})

	Describe("GetStatusCounts", func() {
		It("should return zeros for an empty table", func() {
			counts, err := service.GetStatusCounts()
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal(stats.StatusCounts{}))
		})

		It("should count statuses across the whole table", func() {
			insertIssue("I1", "Submitted", "A, B", nil, nil)
			insertIssue("I2", "Submitted", "A, B", nil, nil)
			insertIssue("I3", "Resolved", "C, D", nil, nil)

			counts, err := service.GetStatusCounts()
			Expect(err).NotTo(HaveOccurred())
			Expect(counts.Total).To(Equal(3))
			Expect(counts.Submitted).To(Equal(2))
			Expect(counts.Resolved).To(Equal(1))
		})
	})

	Describe("GetAreaReports", func() {
		It("should aggregate located issues into area buckets", func() {
			lat, lng := 12.97, 77.64
			insertIssue("I1", "Submitted", "MG Road, Bengaluru, KA", &lat, &lng)
			insertIssue("I2", "Resolved", "Brigade Road, Bengaluru, KA", &lat, &lng)
			insertIssue("I3", "Submitted", "No coordinates, Mysuru, KA", nil, nil)

			reports, err := service.GetAreaReports()
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(1))
			Expect(reports[0].Area).To(Equal("Bengaluru"))
			Expect(reports[0].Total).To(Equal(2))
			Expect(reports[0].ResolutionRate).To(Equal(50.0))
			Expect(reports[0].Color).To(Equal("yellow"))
		})
	})
})
