package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"retail/internal/config"
	"retail/internal/handler"
	"retail/internal/infra/db"
	infraRepo "retail/internal/infra/repository"
	"retail/internal/logging"
	"retail/internal/server"
	"retail/internal/usecase"
	"retail/internal/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Base().Error("load config", "err", err)
		os.Exit(1)
	}

	log := logging.Init("retail-api", cfg.LogFile, cfg.LogLevel)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("connect db", "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Error("migrate", "err", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := usecase.SystemClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	issuer := usecase.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	accountValidator := validator.NewAccountValidator(userRepo)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(txm, userRepo, hasher, issuer, accountValidator, clock)
	productUC := usecase.NewProductUsecase(txm, productRepo, supplierRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, clock)
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	supplierUC := usecase.NewSupplierUsecase(supplierRepo)
	reportUC := usecase.NewReportUsecase(reportRepo, cfg.LowStockThreshold)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.AdminEmail != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error("ensure admin", "err", err)
			os.Exit(1)
		}
	}

	//Handler生成
	srv := server.New(cfg, log, server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Products:      handler.NewProductHandler(productUC),
		AdminProducts: handler.NewAdminProductHandler(productUC, reportUC.LowStockThreshold()),
		Cart:          handler.NewCartHandler(cartUC),
		Orders:        handler.NewOrderHandler(orderUC),
		AdminOrders:   handler.NewAdminOrderHandler(adminOrderUC),
		Customers:     handler.NewCustomerHandler(customerUC),
		Suppliers:     handler.NewSupplierHandler(supplierUC),
		Reports:       handler.NewReportHandler(reportUC),
	})

	//Server起動
	if err := srv.Run(ctx); err != nil {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}
