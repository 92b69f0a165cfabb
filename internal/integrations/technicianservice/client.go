package technicianservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Client клиент для работы со справочником техников
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient создает новый экземпляр клиента справочника техников
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UseRedisCache включает кэширование успешных GET-ответов в Redis
// При ttl <= 0 или nil клиенте кэш не используется
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// ListTechnicians получает техников компании в порядке справочника
func (c *Client) ListTechnicians(ctx context.Context, companyID int64) ([]*domain.Technician, error) {
	cacheKey := fmt.Sprintf("technicians:%d", companyID)
	url := fmt.Sprintf("%s/internal/companies/%d/technicians", c.baseURL, companyID)

	var resp TechniciansResponse
	if !c.readCache(ctx, cacheKey, &resp) {
		if err := c.doGet(ctx, url, &resp); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKey, resp)
	}

	technicians := make([]*domain.Technician, 0, len(resp.Technicians))
	for _, t := range resp.Technicians {
		// Справочник не должен отдавать чужих техников, но тенантность проверяем сами
		if t.CompanyID != companyID {
			c.log.Warn("ListTechnicians: skipping technician id=%d of company=%d in list of company=%d",
				t.ID, t.CompanyID, companyID)
			continue
		}
		technicians = append(technicians, t.ToDomain())
	}

	return technicians, nil
}

// GetTechnician получает техника компании
// Возвращает ErrTechnicianNotFound, если техника нет или он принадлежит другой компании
func (c *Client) GetTechnician(ctx context.Context, companyID, technicianID int64) (*domain.Technician, error) {
	cacheKey := fmt.Sprintf("technician:%d:%d", companyID, technicianID)
	url := fmt.Sprintf("%s/internal/companies/%d/technicians/%d", c.baseURL, companyID, technicianID)

	var technician Technician
	if !c.readCache(ctx, cacheKey, &technician) {
		if err := c.doGet(ctx, url, &technician); err != nil {
			return nil, err
		}
		c.writeCache(ctx, cacheKey, technician)
	}

	if technician.ID != technicianID || technician.CompanyID != companyID {
		c.log.Warn("GetTechnician: technician id=%d does not belong to company=%d", technicianID, companyID)
		return nil, ErrTechnicianNotFound
	}

	return technician.ToDomain(), nil
}

func (c *Client) doGet(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrTechnicianNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("readCache: redis get key=%s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("writeCache: redis set key=%s failed: %v", key, err)
	}
}
