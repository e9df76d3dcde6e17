package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stockbook/inventory-service/internal/events"
	"github.com/stockbook/inventory-service/internal/handler"
	"github.com/stockbook/inventory-service/internal/mail"
	"github.com/stockbook/inventory-service/internal/repository"
	"github.com/stockbook/inventory-service/internal/service"
	"github.com/stockbook/inventory-service/pkg/config"
	"github.com/stockbook/inventory-service/pkg/middleware"
	pkgtls "github.com/stockbook/inventory-service/pkg/tls"
)

func main() {
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	productRepo := repository.NewProductRepository(dynamoClient, cfg.ProductTableName)
	customerRepo := repository.NewCustomerRepository(dynamoClient, cfg.CustomerTableName)
	saleRepo := repository.NewSaleRepository(dynamoClient, cfg.SaleTableName)

	// Event publishing is optional; without brokers the sale service
	// simply skips publishing.
	var publisher service.Publisher
	var producer *events.KafkaProducer
	if cfg.KafkaBrokers != "" {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = producer
		defer producer.Close()
	}

	// Email export is optional as well; requests for format=email fail
	// with a clear error when no API key is configured.
	var mailer service.Mailer
	if cfg.ResendAPIKey != "" {
		client, err := mail.NewClient(cfg.ResendAPIKey, cfg.EmailFrom, logger)
		if err != nil {
			log.Fatal("Failed to create mail client:", err)
		}
		mailer = client
	}

	productService := service.NewProductService(productRepo, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	saleService := service.NewSaleService(saleRepo, productRepo, publisher, logger, cfg.RestoreStockOnDelete)
	reportService := service.NewReportService(saleRepo, productRepo, customerRepo, logger)
	exportService := service.NewExportService(reportService, mailer, logger)

	productHandler := handler.NewProductHandler(productService, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	saleHandler := handler.NewSaleHandler(saleService, logger)
	reportHandler := handler.NewReportHandler(reportService, exportService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	v1 := router.Group("/api/v1")
	{
		v1.POST("/products", productHandler.CreateProduct)
		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.PUT("/products/:id", productHandler.UpdateProduct)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)

		v1.POST("/customers", customerHandler.CreateCustomer)
		v1.GET("/customers", customerHandler.ListCustomers)
		v1.GET("/customers/:id", customerHandler.GetCustomer)
		v1.PUT("/customers/:id", customerHandler.UpdateCustomer)
		v1.DELETE("/customers/:id", customerHandler.DeleteCustomer)

		v1.POST("/sales", saleHandler.RecordSale)
		v1.GET("/sales", saleHandler.ListSales)
		v1.PUT("/sales/:id", saleHandler.ReviseSale)
		v1.DELETE("/sales/:id", saleHandler.RemoveSale)

		v1.GET("/reports/sales", reportHandler.SalesReport)
		v1.GET("/reports/items", reportHandler.ItemsReport)
		v1.GET("/reports/customer-ledger", reportHandler.CustomerLedger)
		v1.GET("/reports/export", reportHandler.Export)

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "healthy"})
		})
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	var tlsSource *pkgtls.Source
	if cfg.TLSEnabled {
		tlsCfg, source, err := pkgtls.Load(context.Background(), pkgtls.Options{
			Enabled:    cfg.TLSEnabled,
			SocketPath: cfg.SpireSocketPath,
		}, logger)
		if err != nil {
			log.Fatal("Failed to load TLS config:", err)
		}
		srv.TLSConfig = tlsCfg
		tlsSource = source
		defer tlsSource.Close()
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.Bool("tls", cfg.TLSEnabled))
		var err error
		if cfg.TLSEnabled {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
