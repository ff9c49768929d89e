package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/craftroots/artisan-api/logger"
)

const notifyTimeout = 15 * time.Second

// NotifyOrderPlaced alerts the artisan about a new order. Best-effort: every
// failure is logged and swallowed.
func NotifyOrderPlaced(sender Sender, phone, orderID string, totalPaise int64, buyerLocation string) {
	log := logger.Get()

	normalized, err := NormalizePhone(phone)
	if err != nil {
		log.Warn().Str("phone", phone).Str("order_id", orderID).Msg("sms: skipping order notification, bad artisan phone")
		return
	}

	message := fmt.Sprintf("New Order Alert!\nOrder #%s\nAmount: Rs %.2f", orderID, float64(totalPaise)/100)
	if buyerLocation != "" {
		message += "\nLocation: " + buyerLocation
	}
	message += "\nCheck your dashboard for details!"

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := sender.Send(ctx, normalized, message); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("sms: order notification failed")
		return
	}
	log.Info().Str("order_id", orderID).Msg("sms: order notification sent to artisan")
}

// NotifyOrderCompleted tells the buyer their order was fulfilled.
func NotifyOrderCompleted(sender Sender, phone, orderID string) {
	log := logger.Get()

	normalized, err := NormalizePhone(phone)
	if err != nil {
		log.Warn().Str("phone", phone).Str("order_id", orderID).Msg("sms: skipping completion notification, bad buyer phone")
		return
	}

	message := fmt.Sprintf("Your order #%s has been completed!\nThank you for shopping with local artisans.\nRate your experience on our platform!", orderID)

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := sender.Send(ctx, normalized, message); err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("sms: completion notification failed")
		return
	}
	log.Info().Str("order_id", orderID).Msg("sms: completion notification sent to buyer")
}
