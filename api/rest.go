package api

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"favorite-app-service/data"
	"favorite-app-service/features"
	"favorite-app-service/service"
)

// Predictor is the prediction engine as the front ends see it.
type Predictor interface {
	Predict(rec features.FeatureRecord) (*service.PredictionResult, error)
}

type PredictResponse struct {
	RequestID      string                 `json:"request_id"`
	Timestamp      time.Time              `json:"timestamp"`
	PredictedLabel string                 `json:"predicted_label"`
	Top3           service.Ranking        `json:"top3"`
	Echo           features.FeatureRecord `json:"echo"`
}

func newPredictResponse(res *service.PredictionResult) PredictResponse {
	return PredictResponse{
		RequestID:      uuid.New().String(),
		Timestamp:      time.Now().UTC(),
		PredictedLabel: res.PredictedLabel,
		Top3:           res.Top3,
		Echo:           res.Echo,
	}
}

// NewRouter wires the REST routes onto a fiber app.
func NewRouter(predictor Predictor, page *Page, choices *data.Choices, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "favorite-app-service",
		DisableStartupMessage: true,
	})
	app.Use(requestLogger(log))

	app.Get("/", HandleIndex(page))
	app.Post("/predict", HandlePredictForm(predictor, page, log))
	app.Get("/api/choices", HandleChoices(choices))
	app.Post("/api/predict", HandlePredictJSON(predictor, log))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app
}

func HandleIndex(page *Page) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return sendPage(c, page, fiber.StatusOK, nil, "")
	}
}

func HandleChoices(choices *data.Choices) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(choices)
	}
}

// HandlePredictForm scores a browser form submission and renders the page
// with the result.
func HandlePredictForm(predictor Predictor, page *Page, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := features.Normalize(formValues(c))

		res, err := predictor.Predict(rec)
		if err != nil {
			log.Error("prediction failed", zap.Error(err), zap.Any("record", rec))
			return sendPage(c, page, fiber.StatusInternalServerError, nil, "Prediction failed")
		}
		return sendPage(c, page, fiber.StatusOK, res, "")
	}
}

// HandlePredictJSON scores a JSON object or a form body and answers in JSON.
func HandlePredictJSON(predictor Predictor, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vals features.Values
		if c.Is("json") {
			body := map[string]any{}
			if err := json.Unmarshal(c.Body(), &body); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid JSON body",
				})
			}
			vals = valuesFromMap(body)
		} else {
			vals = formValues(c)
		}

		rec := features.Normalize(vals)
		res, err := predictor.Predict(rec)
		if err != nil {
			log.Error("prediction failed", zap.Error(err), zap.Any("record", rec))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Prediction failed",
			})
		}
		return c.JSON(newPredictResponse(res))
	}
}

func sendPage(c *fiber.Ctx, page *Page, status int, res *service.PredictionResult, errMsg string) error {
	body, err := page.Render(res, errMsg)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(body)
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
}
