package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biosecret/task-tracker/config"
	"github.com/biosecret/task-tracker/database"
	"github.com/biosecret/task-tracker/events"
	"github.com/biosecret/task-tracker/handlers"
	"github.com/biosecret/task-tracker/middleware"
	"github.com/biosecret/task-tracker/router"
	"github.com/biosecret/task-tracker/store"
	"github.com/biosecret/task-tracker/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// mqttBuffer lớn hơn buffer của SSE vì publisher phải chờ broker xác nhận
const mqttBuffer = 256

// Deps là các phụ thuộc được tiêm vào ứng dụng Fiber
type Deps struct {
	Store  store.Store
	Broker *events.Broker

	// Now là đồng hồ dùng để kiểm tra due_date, mặc định time.Now
	Now func() time.Time
}

// New tạo ứng dụng Fiber với middleware và route đầy đủ
func New(cfg config.Config, deps Deps) *fiber.App {
	if deps.Store == nil {
		deps.Store = store.NewMemory()
	}
	if deps.Broker == nil {
		deps.Broker = events.NewBroker(deps.Now)
	}

	app := fiber.New(fiber.Config{
		AppName:      "task-tracker",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))

	// Đính kèm middleware để xử lý lỗi và ghi log
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency} ${locals:requestid}\n",
	}))

	h := handlers.New(deps.Store, validation.New(deps.Now), deps.Broker)
	router.SetupRoutes(app, h)

	config.AddSwaggerRoutes(app)

	return app
}

// openStore chọn PostgreSQL khi có POSTGRESQL_URI, ngược lại dùng bộ nhớ
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.PostgresURI == "" {
		log.Info("POSTGRESQL_URI not set, using in-memory store")
		return store.NewMemory(), nil
	}
	db, err := database.OpenPostgreSQL(ctx, cfg.PostgresURI)
	if err != nil {
		return nil, err
	}
	return store.NewPostgres(db), nil
}

// startMQTT kết nối tới MQTT broker và chuyển event sang đó cho tới khi ctx bị hủy
func startMQTT(ctx context.Context, cfg config.Config, broker *events.Broker) (func(), error) {
	if cfg.MQTTURL == "" {
		return func() {}, nil
	}
	mcfg, err := events.ParseMQTTURL(cfg.MQTTURL)
	if err != nil {
		return nil, err
	}
	client, err := events.ConnectMQTT(mcfg)
	if err != nil {
		return nil, err
	}

	publisher := events.NewMQTTPublisher(client, mcfg.Topic)
	go publisher.Run(ctx, broker.Subscribe(mqttBuffer))

	return func() { client.Disconnect(250) }, nil
}

// SetupAndRunApp khởi động ứng dụng Fiber
func SetupAndRunApp() error {
	// Load biến môi trường từ file .env
	if err := config.LoadENV(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	broker := events.NewBroker(nil)

	disconnect, err := startMQTT(ctx, cfg, broker)
	if err != nil {
		return err
	}
	defer disconnect()

	app := New(cfg, Deps{Store: st, Broker: broker})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		// Đóng broker trước để các stream SSE kết thúc
		broker.Close()
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	return app.Listen(":" + cfg.Port)
}
