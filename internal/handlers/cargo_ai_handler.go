// kmapin-logistics/internal/handlers/cargo_ai_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kmapin-logistics/config"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

// allowedCargoTypes - типы, в которые Gemini обязан уложить описание груза.
var allowedCargoTypes = map[string]bool{
	"documents":  true,
	"general":    true,
	"fragile":    true,
	"perishable": true,
	"dangerous":  true,
}

// ClassifyCargoInput - свободное описание груза из формы котировки.
type ClassifyCargoInput struct {
	Description string `json:"description" binding:"required"`
}

// ClassifyCargoHandler определяет тип груза по текстовому описанию через Gemini.
// Возвращает 503, если клиент Gemini не сконфигурирован.
func ClassifyCargoHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cargo classification is not configured"})
		return
	}

	var input ClassifyCargoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	promptText := fmt.Sprintf(
		"Ты помощник логистической компании. Классифицируй описание груза в одну из категорий: "+
			"documents, general, fragile, perishable, dangerous. "+
			"Ответь ровно одним словом — названием категории, без пояснений. "+
			"Описание груза: \"%s\"", input.Description)

	resp, err := config.GeminiClient.GenerateContent(ctx, genai.Text(promptText))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Cargo classification failed: " + err.Error()})
		return
	}

	var answer string
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Content.Parts) > 0 {
		if textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
			answer = strings.ToLower(strings.TrimSpace(string(textPart)))
		}
	}

	// Модель иногда добавляет точку или лишние слова — берём первое слово.
	if fields := strings.Fields(answer); len(fields) > 0 {
		answer = strings.Trim(fields[0], ".,!")
	}

	if !allowedCargoTypes[answer] {
		// Не угадали категорию — безопасный дефолт.
		answer = "general"
	}

	c.JSON(http.StatusOK, gin.H{"cargoType": answer})
}
