package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "github.com/opencivic/civic-reporter/internal"
	issueDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/issue"
	userDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/user"
	"github.com/opencivic/civic-reporter/internal/issues"
	issuesPostgres "github.com/opencivic/civic-reporter/internal/issues/postgres"
)

func TestIssueRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Issue Repository Suite")
}

var _ = Describe("IssueRepository", func() {
	var (
		db   *gorm.DB
		repo issues.RepositoryAPI
	)

	newIssue := func(id, userID, status string) *issueDatamodel.Issue {
		return &issueDatamodel.Issue{
			ID:          id,
			UserID:      userID,
			Description: "desc " + id,
			Category:    "Other",
			Location:    "somewhere",
			Status:      status,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&issueDatamodel.Issue{}, &userDatamodel.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = issuesPostgres.NewIssueRepository(db)
	})

	Describe("GetByID", func() {
		It("should return the not-found sentinel for an unknown id", func() {
			_, err := repo.GetByID("missing")
			Expect(err).To(Equal(apperrors.ErrIssueNotFound))
		})

		It("should round-trip a stored issue", func() {
			Expect(repo.Create(newIssue("I1", "U1", "Submitted"))).To(Succeed())

			got, err := repo.GetByID("I1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Description).To(Equal("desc I1"))
		})
	})

	Describe("GetAll", func() {
		It("should order newest first", func() {
			older := newIssue("I1", "U1", "Submitted")
			older.CreatedAt = time.Now().Add(-time.Hour)
			newer := newIssue("I2", "U1", "Submitted")
			newer.CreatedAt = time.Now()
			Expect(repo.Create(older)).To(Succeed())
			Expect(repo.Create(newer)).To(Succeed())

			all, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
			Expect(all[0].ID).To(Equal("I2"))
			Expect(all[1].ID).To(Equal("I1"))
		})
	})

	Describe("Update", func() {
		It("should write only the given columns", func() {
			issue := newIssue("I1", "U1", "Submitted")
			dept := "Public Works"
			issue.AssignedDepartment = &dept
			Expect(repo.Create(issue)).To(Succeed())

			err := repo.Update("I1", map[string]interface{}{
				"status":     "Resolved",
				"updated_at": time.Now(),
			})
			Expect(err).NotTo(HaveOccurred())

			got, err := repo.GetByID("I1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal("Resolved"))
			Expect(got.AssignedDepartment).NotTo(BeNil())
			Expect(*got.AssignedDepartment).To(Equal("Public Works"))
		})
	})

	Describe("Delete", func() {
		It("should report affected rows", func() {
			Expect(repo.Create(newIssue("I1", "U1", "Submitted"))).To(Succeed())

			affected, err := repo.Delete("I1")
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			affected, err = repo.Delete("I1")
			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(BeZero())
		})
	})

	Describe("GetOwner", func() {
		It("should resolve name and email for an existing user", func() {
			Expect(db.Create(&userDatamodel.User{ID: "U1", Name: "Asha", Email: "asha@example.com"}).Error).To(Succeed())

			name, email, err := repo.GetOwner("U1")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("Asha"))
			Expect(email).To(Equal("asha@example.com"))
		})

		It("should return empty strings for a missing user", func() {
			name, email, err := repo.GetOwner("ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(BeEmpty())
			Expect(email).To(BeEmpty())
		})
	})
})
