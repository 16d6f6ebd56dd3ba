package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/faucetdrop/questhub/questhub/apperrors"
	"github.com/faucetdrop/questhub/questhub/chain"
)

// Client-side blob: URLs die with the browser tab, so every image a quest
// references has to be rehosted here before the quest is finalized.
const maxUploadSize = 10 * 1024 * 1024

func UploadFiles(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return apperrors.Validation("invalid multipart form: %v", err)
		}
		files := form.File["files"]
		if len(files) == 0 {
			return apperrors.Validation("no files uploaded")
		}

		kind := c.FormValue("kind", "image")
		questAddress := c.FormValue("quest")
		if kind == "proof" && !chain.ValidAddress(questAddress) {
			return apperrors.Validation("proof uploads require a valid quest address")
		}

		results := make([]fiber.Map, 0, len(files))
		for _, file := range files {
			results = append(results, processUpload(c, webApp, file, kind, questAddress))
		}
		return sendSuccess(c, fiber.Map{
			"files": results,
			"total": len(results),
		})
	}
}

func processUpload(c *fiber.Ctx, webApp *WebApp, file *multipart.FileHeader, kind, questAddress string) fiber.Map {
	if file.Size > maxUploadSize {
		return fiber.Map{
			"filename": file.Filename,
			"success":  false,
			"error":    "file too large (max 10MB)",
		}
	}

	src, err := file.Open()
	if err != nil {
		return fiber.Map{"filename": file.Filename, "success": false, "error": err.Error()}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fiber.Map{"filename": file.Filename, "success": false, "error": err.Error()}
	}

	contentType := file.Header.Get("Content-Type")
	var url string
	if kind == "proof" {
		url, err = webApp.Spaces.UploadProof(c.Context(), questAddress, data, contentType)
	} else {
		url, err = webApp.Spaces.UploadQuestImage(c.Context(), data, contentType)
	}
	if err != nil {
		return fiber.Map{"filename": file.Filename, "success": false, "error": err.Error()}
	}

	return fiber.Map{
		"filename": file.Filename,
		"success":  true,
		"url":      url,
	}
}
