package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	departmentDatamodel "github.com/opencivic/civic-reporter/internal/core/datamodel/department"
	"github.com/opencivic/civic-reporter/internal/departments"
	departmentsPostgres "github.com/opencivic/civic-reporter/internal/departments/postgres"
	"github.com/opencivic/civic-reporter/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default departments",
	Long:  `Insert the four default departments when the table is empty. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Environment, cfg.Logging.Level)

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := gormDB.Where("1 = 1").Delete(&departmentDatamodel.Department{}).Error; err != nil {
				log.Fatalf("failed to clear departments: %v", err)
			}
			fmt.Println("Cleared existing departments")
		}

		repo := departmentsPostgres.NewDepartmentRepository(gormDB)
		service := departments.NewService(repo, logger.LoggerWrapper())

		if err := service.SeedDefaults(); err != nil {
			log.Fatalf("failed to seed departments: %v", err)
		}

		fmt.Println("Default departments seeded successfully")
	},
}
