package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zapkash/vendor-console/config"
	"github.com/zapkash/vendor-console/engine"
	"github.com/zapkash/vendor-console/metrics"
	"github.com/zapkash/vendor-console/middleware"
	"github.com/zapkash/vendor-console/models"
	"github.com/zapkash/vendor-console/utils"
)

// StartCampaignExport downloads the campaign's QR sheet PDF. Small
// campaigns come down in one shot; large ones are split into parts
// which are written under the export directory as they finish, with the
// job row carrying resumable progress. The parts loop runs sequentially
// so progress stays monotone and part n+1 never outruns part n.
func StartCampaignExport(c *gin.Context) {
	utils.LogInfo("StartCampaignExport called")
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	campaign, ok := loadCampaign(c, vendorID)
	if !ok {
		return
	}
	if campaign.Status == models.CampaignStatusPending {
		utils.BadRequest(c, "Campaign has no QRs to export yet", nil)
		return
	}

	token := middleware.VendorToken(c)
	stats, err := config.Platform.GetCampaignStats(c.Request.Context(), token)
	if err != nil {
		// Stats only refine the size estimate; exporting can proceed
		// on local numbers.
		utils.LogError("Failed to fetch campaign stats for vendor %d: %v", vendorID, err)
		stats = nil
	}

	controller := engine.NewExportController(config.Platform)
	estimate := controller.EstimateQRVolume(campaign, stats)
	plan := controller.Plan(estimate)

	mode := models.ExportModeSingle
	if plan.Chunked {
		mode = models.ExportModeChunked
	}
	job := &models.ExportJob{
		ID:           uuid.New().String(),
		VendorID:     vendorID,
		CampaignID:   campaign.ID,
		Mode:         mode,
		EstimatedQRs: estimate,
		ChunkSize:    plan.ChunkSize,
		TotalParts:   plan.TotalParts,
		Status:       models.ExportStatusRunning,
	}
	if err := utils.CreateExportJob(job); err != nil {
		utils.LogError("Failed to create export job for campaign %d: %v", campaign.ID, err)
		utils.InternalServerError(c, "Failed to create export job", err.Error())
		return
	}

	if err := os.MkdirAll(config.App.ExportDir, 0755); err != nil {
		utils.LogError("Failed to create export directory: %v", err)
		utils.InternalServerError(c, "Failed to prepare export directory", err.Error())
		return
	}

	sink := func(part, totalParts, offset, limit int, data []byte) error {
		fileName := fmt.Sprintf("%s-part-%02d.pdf", job.ID, part)
		path := filepath.Join(config.App.ExportDir, fileName)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		if err := utils.AddExportPart(&models.ExportPart{
			JobID:     job.ID,
			Part:      part,
			Offset:    offset,
			Limit:     limit,
			FileName:  fileName,
			SizeBytes: int64(len(data)),
		}); err != nil {
			return err
		}
		// The oversized fallback can re-size the job mid-run; the
		// first part reports the final shape.
		job.CompletedParts = part
		job.TotalParts = totalParts
		if totalParts > 1 {
			job.Mode = models.ExportModeChunked
		}
		return utils.UpdateExportJob(job)
	}
	progress := func(percent int) {
		if percent > job.Progress {
			job.Progress = percent
			if err := utils.UpdateExportJob(job); err != nil {
				utils.LogError("Failed to update export progress for job %s: %v", job.ID, err)
			}
		}
	}

	parts, err := controller.Export(c.Request.Context(), token, campaign, stats, sink, progress)
	metrics.ExportParts.WithLabelValues(job.Mode).Add(float64(parts))
	if err != nil {
		utils.LogError("Export failed for campaign %d after %d parts: %v", campaign.ID, parts, err)
		job.Status = models.ExportStatusFailed
		job.Error = err.Error()
		if saveErr := utils.UpdateExportJob(job); saveErr != nil {
			utils.LogError("Failed to mark export job %s failed: %v", job.ID, saveErr)
		}
		respondPlatformError(c, err)
		return
	}

	job.Status = models.ExportStatusCompleted
	job.Progress = 100
	if err := utils.UpdateExportJob(job); err != nil {
		utils.LogError("Failed to mark export job %s completed: %v", job.ID, err)
	}
	utils.LogInfo("Export of campaign %d finished: %d parts (%s mode)", campaign.ID, parts, job.Mode)

	// Single-shot exports stream straight back; chunked ones hand out
	// the job for part-by-part download.
	if job.Mode == models.ExportModeSingle && parts == 1 {
		path := filepath.Join(config.App.ExportDir, fmt.Sprintf("%s-part-01.pdf", job.ID))
		c.FileAttachment(path, fmt.Sprintf("campaign_%d_qrs.pdf", campaign.ID))
		return
	}
	utils.Success(c, fmt.Sprintf("Export finished in %d part(s)", parts), formatExportJob(job))
}

// GetExportJob returns an export job with its finished parts, for
// progress polling and resuming part downloads.
func GetExportJob(c *gin.Context) {
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	job, err := utils.GetExportJob(vendorID, c.Param("id"))
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.NotFound(c, "Export job not found")
		} else {
			utils.InternalServerError(c, "Failed to load export job", err.Error())
		}
		return
	}
	utils.Success(c, "Export job retrieved", formatExportJob(job))
}

// DownloadExportPart streams one finished part file.
func DownloadExportPart(c *gin.Context) {
	vendorID, ok := middleware.VendorID(c)
	if !ok {
		utils.Unauthorized(c, utils.ErrUnauthorized)
		return
	}

	job, err := utils.GetExportJob(vendorID, c.Param("id"))
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.NotFound(c, "Export job not found")
		} else {
			utils.InternalServerError(c, "Failed to load export job", err.Error())
		}
		return
	}
	partNum, err := strconv.Atoi(c.Param("part"))
	if err != nil {
		utils.BadRequest(c, "Invalid part number", nil)
		return
	}

	for _, part := range job.Parts {
		if part.Part == partNum {
			path := filepath.Join(config.App.ExportDir, part.FileName)
			c.FileAttachment(path, part.FileName)
			return
		}
	}
	utils.NotFound(c, "Export part not found")
}

// formatExportJob renders an export job for API responses.
func formatExportJob(job *models.ExportJob) gin.H {
	parts := make([]gin.H, len(job.Parts))
	for i, part := range job.Parts {
		parts[i] = gin.H{
			"part":       part.Part,
			"offset":     part.Offset,
			"limit":      part.Limit,
			"file_name":  part.FileName,
			"size_bytes": part.SizeBytes,
		}
	}
	return gin.H{
		"id":              job.ID,
		"campaign_id":     job.CampaignID,
		"mode":            job.Mode,
		"estimated_qrs":   job.EstimatedQRs,
		"chunk_size":      job.ChunkSize,
		"total_parts":     job.TotalParts,
		"completed_parts": job.CompletedParts,
		"progress":        job.Progress,
		"status":          job.Status,
		"error":           job.Error,
		"parts":           parts,
	}
}
