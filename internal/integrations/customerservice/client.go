package customerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с CustomerService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CustomerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCar получает автомобиль по ID
func (c *Client) GetCar(ctx context.Context, carID int64) (*Car, error) {
	url := fmt.Sprintf("%s/internal/cars/%d", c.baseURL, carID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid car ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrCarNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var car Car
	if err := json.NewDecoder(resp.Body).Decode(&car); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &car, nil
}

// GetCustomerCar получает автомобиль клиента с проверкой владения.
// Автомобиль, принадлежащий другому клиенту, трактуется как ErrCarNotOwned
func (c *Client) GetCustomerCar(ctx context.Context, customerID, carID int64) (*Car, error) {
	c.log.Info("Fetching car %d for customer %d", carID, customerID)

	car, err := c.GetCar(ctx, carID)
	if err != nil {
		if err == ErrCarNotFound {
			c.log.Warn("Car %d not found for customer %d", carID, customerID)
			return nil, err
		}

		c.log.Error("CustomerService request failed for car %d: %v", carID, err)
		return nil, err
	}

	if car.CustomerID != customerID {
		c.log.Warn("Car %d belongs to customer %d, requested by customer %d", carID, car.CustomerID, customerID)
		return nil, ErrCarNotOwned
	}

	return car, nil
}
