package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobtrends-automation/internal/chain"
	"go-jobtrends-automation/internal/config"
	"go-jobtrends-automation/internal/pipeline"
	"go-jobtrends-automation/internal/rank"
	"go-jobtrends-automation/internal/source"
	"go-jobtrends-automation/internal/taxonomy"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Job tech-trends API is running!",
			"status":  "healthy",
		})
	})

	r.POST("/scan", scanHandler(cfg))

	log.Printf("Server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// scanHandler runs one scan per request: uploaded taxonomy in, ranked
// table out as JSON or CSV. The browser source is skipped here; a
// per-request browsing session is not worth its startup cost.
func scanHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, _, err := c.Request.FormFile("taxonomy")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "taxonomy file is required"})
			return
		}
		defer file.Close()

		keywords, err := taxonomy.Load(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reqCfg := *cfg
		reqCfg.Sources = withoutBrowser(cfg.Sources)
		if len(reqCfg.Sources) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no non-browser sources configured"})
			return
		}

		ch, err := pipeline.BuildChain(&reqCfg, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		q := source.Query{
			Title:    c.DefaultPostForm("query", cfg.Query),
			Location: c.DefaultPostForm("location", cfg.Location),
			Limit:    intForm(c, "limit", cfg.Limit),
			Pages:    intForm(c, "pages", cfg.Pages),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
		defer cancel()

		result, err := pipeline.Run(ctx, ch, keywords, q)
		if err != nil {
			var chainErr *chain.Error
			if errors.As(err, &chainErr) {
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if c.DefaultPostForm("format", "json") == "csv" {
			c.Header("Content-Type", "text/csv")
			c.Header("Content-Disposition", `attachment; filename="tech_trends.csv"`)
			c.Status(http.StatusOK)
			if err := rank.WriteCSV(c.Writer, result.Table); err != nil {
				log.Printf("Failed to stream CSV: %v", err)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"query":    q.Title,
			"listings": result.Listings,
			"sources":  result.Sources,
			"table":    result.Table,
		})
	}
}

func withoutBrowser(sources []string) []string {
	var out []string
	for _, s := range sources {
		if s != "browser" {
			out = append(out, s)
		}
	}
	return out
}

func intForm(c *gin.Context, key string, fallback int) int {
	v := c.PostForm(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
