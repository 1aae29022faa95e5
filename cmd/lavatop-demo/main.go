// Command lavatop-demo walks through the gate.lava.top API with the
// credentials from the environment: lists the feed, opens an invoice
// for the first offer it finds, pulls sales reports and exercises the
// webhook endpoints. Illustrative only.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	environment "lavatop-go/internal/env"
	"lavatop-go/pkg/lavatop"

	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := environment.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to setup environment: %v", err)
	}

	logger := env.Logger

	go func() {
		logger.Info("Starting observability server", slog.String("addr", env.Observability.Addr))
		if err := env.Observability.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Observability server error", slog.Any("error", err))
		}
	}()

	runDemo(ctx, env.Clients.LavaTop, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer cancel()
	if err := env.Observability.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		logger.Error("Observability server shutdown error", slog.Any("error", err))
	}
}

func runDemo(ctx context.Context, client *lavatop.Client, logger *slog.Logger) {
	feed, err := client.GetFeed(ctx, nil)
	if err != nil {
		logger.Error("GetFeed failed", slog.Any("error", err))
		return
	}
	products := feed.Products()
	logger.Info("Fetched feed",
		slog.Int("products", len(products)),
		slog.Int("posts", len(feed.Posts())))

	var offerID string
	for _, product := range products {
		if len(product.Offers) > 0 {
			offerID = product.Offers[0].ID
			break
		}
	}

	if offerID != "" {
		invoice, err := client.CreateInvoice(ctx, lavatop.CreateInvoiceRequest{
			Email:         "buyer@example.com",
			OfferID:       offerID,
			Currency:      lavatop.CurrencyRUB,
			PaymentMethod: lavatop.PaymentMethodBank131,
			BuyerLanguage: lavatop.LanguageRU,
		})
		if err != nil {
			logger.Error("CreateInvoice failed", slog.Any("error", err))
		} else {
			logger.Info("Invoice created",
				slog.String("id", invoice.ID),
				slog.String("status", string(invoice.Status)),
				slog.String("payment_url", invoice.PaymentURL))

			fetched, err := client.GetInvoice(ctx, invoice.ID)
			if err != nil {
				logger.Error("GetInvoice failed", slog.Any("error", err))
			} else {
				logger.Info("Invoice fetched", slog.String("status", string(fetched.Status)))
			}
		}
	}

	sales, err := client.GetSales(ctx, nil)
	if err != nil {
		logger.Error("GetSales failed", slog.Any("error", err))
	} else {
		logger.Info("Sales report", slog.Int("products", len(sales.Items)))
	}

	if len(products) > 0 {
		productSales, err := client.GetProductSales(ctx, products[0].ID, nil)
		if err != nil {
			logger.Error("GetProductSales failed", slog.Any("error", err))
		} else {
			logger.Info("Product sales",
				slog.String("product_id", products[0].ID),
				slog.Int("total", productSales.Total))
		}
	}

	donate, err := client.GetDonateLink(ctx)
	if err != nil {
		logger.Error("GetDonateLink failed", slog.Any("error", err))
	} else {
		logger.Info("Donate link", slog.String("url", donate.URL()))
	}

	webhook, err := client.CreateWebhook(ctx, lavatop.CreateWebhookRequest{
		URL:       "https://partner.example.com/lava/hook",
		Name:      "demo-" + uuid.NewString(),
		APIKeyID:  "key-1",
		EventType: lavatop.WebhookEventPaymentResult,
		AuthConfig: &lavatop.WebhookAuthConfig{
			AuthType: lavatop.WebhookAuthNone,
		},
	})
	if err != nil {
		logger.Error("CreateWebhook failed", slog.Any("error", err))
		return
	}
	logger.Info("Webhook created", slog.String("id", webhook.ID))

	history, err := client.GetWebhookHistory(ctx, nil)
	if err != nil {
		logger.Error("GetWebhookHistory failed", slog.Any("error", err))
	} else {
		logger.Info("Webhook history", slog.Int("deliveries", len(history.Items)))
	}

	if err := client.DeleteWebhook(ctx, webhook.ID); err != nil {
		logger.Error("DeleteWebhook failed", slog.Any("error", err))
	} else {
		logger.Info("Webhook deleted", slog.String("id", webhook.ID))
	}
}
