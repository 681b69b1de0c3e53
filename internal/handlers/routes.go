package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/export"
	"github.com/codebuildervaibhav/meeting-minutes/internal/pipeline"
	"github.com/codebuildervaibhav/meeting-minutes/internal/storage"
)

// multipartOverhead leaves room for form boundaries and extra fields above
// the file ceiling so oversize files reach the handler's own check
const multipartOverhead = 1 << 20

// Deps are the services the HTTP layer needs
type Deps struct {
	Processor      *pipeline.Processor
	Scratch        *storage.ScratchStore
	Exporter       *export.Exporter
	MaxUploadBytes int64
	StaticDir      string
	Logger         *zap.Logger
}

// NewApp builds the fiber app with every route registered
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(d.MaxUploadBytes + multipartOverhead),
		ErrorHandler:          ErrorHandler(d.Logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			d.Logger.Error("panic recovered", zap.String("path", c.Path()), zap.Any("panic", e), zap.Stack("stack"))
		},
	}))
	app.Use(RequestLogger(d.Logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	uploadHandler := NewUploadHandler(d.Processor, d.Scratch, d.MaxUploadBytes, d.Logger)
	summaryHandler := NewSummaryHandler(d.Processor, d.Logger)
	exportHandler := NewExportHandler(d.Exporter)
	streamHandler := NewStreamHandler(d.Processor, d.Scratch, d.MaxUploadBytes, d.Logger)

	api := app.Group("/api")
	api.Get("/", Index)
	api.Get("/health", Health)
	api.Post("/transcribe", uploadHandler.Transcribe)
	api.Post("/summarize", summaryHandler.Summarize)
	api.Post("/summarize/brief", summaryHandler.Brief)
	api.Post("/process", uploadHandler.Process)
	api.Post("/export/:format", exportHandler.Handle)
	api.Get("/record", UpgradeRequired, websocket.New(streamHandler.Handle))
	api.Use(NotFound)

	if d.StaticDir != "" {
		app.Static("/", d.StaticDir)
		index := filepath.Join(d.StaticDir, "index.html")
		app.Get("/*", func(c *fiber.Ctx) error {
			if _, err := os.Stat(index); err != nil {
				return fiber.ErrNotFound
			}
			return c.SendFile(index)
		})
	}

	return app
}
