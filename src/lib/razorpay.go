package lib

import (
	"log"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

var razorpayClient *razorpay.Client

func GetRazorpayClient() *razorpay.Client {
	if razorpayClient != nil {
		return razorpayClient
	}
	keyId := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	rc := razorpay.NewClient(keyId, keySecret)
	razorpayClient = rc

	return rc
}

// NewRazorpayClient Replace gateway instance with custom client implementation
func NewRazorpayClient(c *razorpay.Client) {
	razorpayClient = c
}

// CreateRentOrder registers an order with the gateway. Amounts are submitted
// in the currency's smallest unit.
func CreateRentOrder(amount float64, currency string, receipt string) (map[string]any, error) {
	rc := GetRazorpayClient()
	data := map[string]any{
		"amount":   int64(amount * 100),
		"currency": currency,
		"receipt":  receipt,
	}
	order, err := rc.Order.Create(data, nil)
	if err != nil {
		log.Printf("[razorpay] Error creating order: %s\n", err.Error())
		return nil, err
	}
	return order, nil
}
