package postgres

import (
	"fmt"
	"os"
	"strings"

	logger "notification-dispatch-api/src/infrastructure/logger"
	correspondentRepo "notification-dispatch-api/src/infrastructure/repository/postgres/correspondent"
	messageRepo "notification-dispatch-api/src/infrastructure/repository/postgres/message"
	templateRepo "notification-dispatch-api/src/infrastructure/repository/postgres/template"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// loadDatabaseConfig loads database configuration from environment variables
// Returns error if any required environment variable is missing
func loadDatabaseConfig() (DatabaseConfig, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	sslMode := os.Getenv("DB_SSLMODE")

	var missingVars []string
	if host == "" {
		missingVars = append(missingVars, "DB_HOST")
	}
	if port == "" {
		missingVars = append(missingVars, "DB_PORT")
	}
	if user == "" {
		missingVars = append(missingVars, "DB_USER")
	}
	if password == "" {
		missingVars = append(missingVars, "DB_PASSWORD")
	}
	if dbName == "" {
		missingVars = append(missingVars, "DB_NAME")
	}
	if sslMode == "" {
		missingVars = append(missingVars, "DB_SSLMODE")
	}

	if len(missingVars) > 0 {
		return DatabaseConfig{}, fmt.Errorf("missing required database environment variables: %s", strings.Join(missingVars, ", "))
	}

	return DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  sslMode,
	}, nil
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode)
}

type PostgresRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewRepository(db *gorm.DB, loggerInstance *logger.Logger) *PostgresRepository {
	return &PostgresRepository{
		DB:     db,
		Logger: loggerInstance,
	}
}

func (r *PostgresRepository) InitDatabase() error {
	cfg, err := loadDatabaseConfig()
	if err != nil {
		r.Logger.Error("Failed to load database configuration", zap.Error(err))
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	gormZap := logger.NewGormLogger(r.Logger.Log).
		LogMode(gormlogger.Warn)

	r.DB, err = gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormZap,
	})
	if err != nil {
		r.Logger.Error("Error connecting to the database", zap.Error(err))
		return err
	}

	err = r.MigrateEntitiesGORM()
	if err != nil {
		r.Logger.Error("Error migrating the database", zap.Error(err))
		return err
	}

	r.Logger.Info("Database connection and migrations successful")
	return nil
}

func (r *PostgresRepository) MigrateEntitiesGORM() error {
	err := r.DB.AutoMigrate(
		&correspondentRepo.EmailCorrespondent{},
		&correspondentRepo.TelegramCorrespondent{},
		&templateRepo.TextTemplate{},
		&messageRepo.Message{},
		&messageRepo.Recipient{},
		&messageRepo.Delivery{},
	)
	if err != nil {
		r.Logger.Error("Error migrating database entities", zap.Error(err))
		return err
	}

	r.Logger.Info("Database entities migration completed successfully")
	return nil
}

// InitPostgresDB initializes the database connection with logger
func InitPostgresDB(loggerInstance *logger.Logger) (*gorm.DB, error) {
	repo := &PostgresRepository{
		Logger: loggerInstance,
	}

	err := repo.InitDatabase()
	if err != nil {
		return nil, err
	}

	return repo.DB, nil
}
