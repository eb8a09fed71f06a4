package cmd

import (
	"context"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/hirelens/hirelens/internal/config"
	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/fsx"
	"github.com/hirelens/hirelens/pkg/fsx/fsxlocal"
	"github.com/hirelens/hirelens/pkg/fsx/fsxs3"
	"github.com/hirelens/hirelens/pkg/logx"
	"github.com/hirelens/hirelens/screening/audit"
	"github.com/hirelens/hirelens/screening/audit/auditapi"
	"github.com/hirelens/hirelens/screening/candidate"
	"github.com/hirelens/hirelens/screening/candidate/candidateapi"
	"github.com/hirelens/hirelens/screening/candidate/candidateinfra"
	"github.com/hirelens/hirelens/screening/jobdesc"
	"github.com/hirelens/hirelens/screening/jobdesc/jdapi"
	"github.com/hirelens/hirelens/screening/jobdesc/jdinfra"
	"github.com/hirelens/hirelens/screening/jobdesc/jdsrv"
	"github.com/hirelens/hirelens/screening/match"
	"github.com/hirelens/hirelens/screening/match/matchapi"
	"github.com/hirelens/hirelens/screening/resume"
	"github.com/hirelens/hirelens/screening/resume/resumeapi"
	"github.com/hirelens/hirelens/screening/resume/resumeinfra"
	"github.com/hirelens/hirelens/screening/resume/resumesrv"
)

// Container wires the application dependencies from config.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem

	// Parsers
	ResumeParser *parse.ResumeParser
	JDParser     *parse.JDParser

	// Repositories
	ResumeRepo    resume.Repository
	JobRepo       resume.JobRepository
	Queue         resume.JobQueue
	CandidateRepo candidate.Repository
	JDRepo        jobdesc.Repository

	// Services
	ResumeService *resumesrv.Service
	JDService     *jdsrv.Service

	// API Handlers
	ResumeHandlers    *resumeapi.ResumeHandlers
	JDHandlers        *jdapi.Handlers
	CandidateHandlers *candidateapi.Handlers
	MatchHandlers     *matchapi.MatchHandlers
	AuditHandlers     *auditapi.AuditHandlers
}

// NewContainer initializes the dependency container.
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	db, err := sqlx.Connect("postgres", c.Config.DB.DSN())
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := c.Redis.Ping(context.Background()).Err(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	switch c.Config.Storage.Backend {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Storage.Bucket, c.Config.Storage.Prefix)
	default:
		c.FileSystem = fsxlocal.NewLocalFileSystem(c.Config.Storage.LocalRoot)
	}
}

func (c *Container) initServices() {
	c.ResumeParser = parse.NewResumeParser()
	c.JDParser = parse.NewJDParser(parse.NewSkillsParser())

	c.ResumeRepo = resumeinfra.NewPostgresResumeRepository(c.DB)
	c.JobRepo = resumeinfra.NewPostgresJobRepository(c.DB)
	c.Queue = resumeinfra.NewRedisQueue(c.Redis, c.Config.Worker.QueueName)
	c.CandidateRepo = candidateinfra.NewPostgresCandidateRepository(c.DB)
	c.JDRepo = jdinfra.NewPostgresJobDescriptionRepository(c.DB)

	c.ResumeService = resumesrv.NewService(
		c.ResumeRepo,
		c.JobRepo,
		c.CandidateRepo,
		c.ResumeParser,
		c.FileSystem,
		c.Queue,
		c.Config.Worker.MaxRetries,
	)
	c.JDService = jdsrv.NewService(c.JDRepo, c.JDParser)

	c.ResumeHandlers = resumeapi.NewResumeHandlers(c.ResumeService, c.FileSystem)
	c.JDHandlers = jdapi.NewHandlers(c.JDService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateRepo)
	c.MatchHandlers = matchapi.NewMatchHandlers(
		match.NewEngine(match.DefaultWeights()),
		c.ResumeRepo,
		c.JDRepo,
		c.ResumeParser,
		c.JDParser,
	)
	c.AuditHandlers = auditapi.NewAuditHandlers(
		audit.NewFairnessCalculator(audit.DefaultFairnessThresholds()),
		audit.NewProtectedScanner(),
		c.ResumeRepo,
	)
}

// Close releases the container's connections.
func (c *Container) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
