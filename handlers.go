package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Error codes returned in the response envelope.
const (
	errWAInvalid        = "WA_INVALID"
	errUnauthorized     = "UNAUTHORIZED"
	errBodyNotJSON      = "BODY_NOT_JSON"
	errMethodNotAllowed = "METHOD_NOT_ALLOWED"
	errNotFound         = "NOT_FOUND"
	errKVBindingMissing = "KV_BINDING_MISSING"
	errKVError          = "KV_ERROR"
)

const syncKeyHeader = "X-Sync-Key"

func fail(c *gin.Context, status int, code string) {
	c.JSON(status, gin.H{"success": false, "error": code})
}

// requestID tags every request so log lines can be correlated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// requireSyncKey gates the authenticated tier behind the shared secret.
// An unconfigured secret rejects everything rather than allowing everything.
func requireSyncKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(syncKeyHeader)
		if cfg.SyncKey == "" || key != cfg.SyncKey {
			logger.Warn("rejected sync key",
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString("request_id")))
			fail(c, http.StatusUnauthorized, errUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// identityParam validates the wa query parameter before any store access.
func identityParam(c *gin.Context) (string, bool) {
	wa := normalizePhone(c.Query("wa"))
	if wa == "" {
		fail(c, http.StatusBadRequest, errWAInvalid)
		return "", false
	}
	return wa, true
}

func requireStore(c *gin.Context) bool {
	if store == nil {
		fail(c, http.StatusInternalServerError, errKVBindingMissing)
		return false
	}
	return true
}

// @Summary Health check
// @Description Report service liveness and whether the KV store is bound
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Service status"
// @Router /ping [get]
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "kv": store != nil})
}

// @Summary Check ledger existence
// @Description Check whether a ledger document exists for an identity
// @Tags kv
// @Produce json
// @Param wa query string true "Phone identity (08xxxx)"
// @Success 200 {object} map[string]interface{} "Existence flag"
// @Failure 400 {object} map[string]interface{} "Invalid identity"
// @Router /kv/exists [get]
func kvExists(c *gin.Context) {
	wa, ok := identityParam(c)
	if !ok || !requireStore(c) {
		return
	}

	found, err := store.Exists(c.Request.Context(), kvKey(wa))
	if err != nil {
		logger.Error("kv exists failed", zap.String("wa", wa), zap.Error(err))
		fail(c, http.StatusInternalServerError, errKVError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "found": found})
}

// @Summary Public ledger projection
// @Description Fetch the reduced, safe projection of a ledger document
// @Tags kv
// @Produce json
// @Param wa query string true "Phone identity (08xxxx)"
// @Success 200 {object} map[string]interface{} "Projection or found=false"
// @Failure 400 {object} map[string]interface{} "Invalid identity"
// @Router /kv/public [get]
func kvPublic(c *gin.Context) {
	wa, ok := identityParam(c)
	if !ok || !requireStore(c) {
		return
	}

	doc, found, err := store.Get(c.Request.Context(), kvKey(wa))
	if err != nil {
		logger.Error("kv public failed", zap.String("wa", wa), zap.Error(err))
		fail(c, http.StatusInternalServerError, errKVError)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"success": true, "found": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "found": true, "value": publicProjection(doc)})
}

// @Summary Read ledger document
// @Description Fetch the full ledger document for an identity
// @Tags kv
// @Produce json
// @Param wa query string true "Phone identity (08xxxx)"
// @Param X-Sync-Key header string true "Shared secret"
// @Success 200 {object} map[string]interface{} "Document or found=false"
// @Failure 400 {object} map[string]interface{} "Invalid identity"
// @Failure 401 {object} map[string]interface{} "Bad sync key"
// @Router /kv/get [get]
func kvGet(c *gin.Context) {
	wa, ok := identityParam(c)
	if !ok || !requireStore(c) {
		return
	}

	key := kvKey(wa)
	doc, found, err := store.Get(c.Request.Context(), key)
	if err != nil {
		logger.Error("kv get failed", zap.String("wa", wa), zap.Error(err))
		fail(c, http.StatusInternalServerError, errKVError)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"success": true, "found": false, "key": key})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "found": true, "key": key, "value": doc})
}

// @Summary Write ledger document
// @Description Upsert the ledger document for an identity; stamps nomor, updatedAt and schema
// @Tags kv
// @Accept json
// @Produce json
// @Param wa query string true "Phone identity (08xxxx)"
// @Param X-Sync-Key header string true "Shared secret"
// @Param document body map[string]interface{} true "Ledger document"
// @Success 200 {object} map[string]interface{} "Write acknowledgement"
// @Failure 400 {object} map[string]interface{} "Invalid identity or body"
// @Failure 401 {object} map[string]interface{} "Bad sync key"
// @Router /kv/set [post]
func kvSet(c *gin.Context) {
	wa, ok := identityParam(c)
	if !ok || !requireStore(c) {
		return
	}

	var doc map[string]any
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		fail(c, http.StatusBadRequest, errBodyNotJSON)
		return
	}

	stampDocument(doc, wa, cfg.SchemaVersion, time.Now())

	key := kvKey(wa)
	if err := store.Put(c.Request.Context(), key, doc); err != nil {
		logger.Error("kv set failed", zap.String("wa", wa), zap.Error(err))
		fail(c, http.StatusInternalServerError, errKVError)
		return
	}

	logger.Info("ledger written",
		zap.String("wa", wa),
		zap.String("request_id", c.GetString("request_id")))
	c.JSON(http.StatusOK, gin.H{"success": true, "key": key, "updatedAt": doc["updatedAt"]})
}

// @Summary Reconciled ledger view
// @Description Normalize and aggregate a ledger into sorted entries and totals
// @Tags ledger
// @Produce json
// @Param wa query string true "Phone identity (08xxxx)"
// @Param X-Sync-Key header string true "Shared secret"
// @Success 200 {object} map[string]interface{} "Entries and summary"
// @Failure 400 {object} map[string]interface{} "Invalid identity"
// @Failure 401 {object} map[string]interface{} "Bad sync key"
// @Router /api/ledger [get]
func getLedger(c *gin.Context) {
	wa, ok := identityParam(c)
	if !ok || !requireStore(c) {
		return
	}

	doc, found, err := store.Get(c.Request.Context(), kvKey(wa))
	if err != nil {
		logger.Error("ledger fetch failed", zap.String("wa", wa), zap.Error(err))
		fail(c, http.StatusInternalServerError, errKVError)
		return
	}

	// A missing document is an empty ledger, not an error.
	var records []RawRecord
	profile := Profile{Nama: wa, Nomor: wa}
	if found {
		records = transactionsOf(doc)
		profile = profileOf(doc, wa)
	}

	entries, summary := aggregateEntries(normalizeBatch(records))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"found":   found,
		"profile": profile,
		"entries": entries,
		"summary": summary,
	})
}

// setupRouter wires middleware and routes. Shared by main and the test suite.
func setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(corsMiddleware())

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, errMethodNotAllowed)
	})
	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, errNotFound)
	})

	r.GET("/ping", ping)
	r.GET("/kv/exists", kvExists)
	r.GET("/kv/public", kvPublic)

	authed := r.Group("/", requireSyncKey())
	authed.GET("/kv/get", kvGet)
	authed.POST("/kv/set", kvSet)
	authed.GET("/api/ledger", getLedger)

	return r
}
