package broker

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"courier/internal/logger"
	pkgerrors "courier/pkg/errors"
	"courier/pkg/logging"
)

type Handler struct {
	Service *Service
	Logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		Service: service,
		Logger:  log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.POST("/register", h.Register)
		v1.POST("/send", h.Send)
		v1.POST("/publish", h.Send)
		v1.POST("/read", h.Read)
		v1.POST("/consume", h.Read)
		v1.POST("/confirm", h.Confirm)
		v1.POST("/acknowledge", h.Confirm)
		v1.POST("/purge", h.Purge)
		v1.POST("/stats", h.Stats)
		v1.GET("/stats", h.Stats)
	}

	router.NoRoute(h.UnknownOperation)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	h.Logger.ErrorwCtx(c.Request.Context(), "Request error", "error", err, "path", c.Request.URL.Path)

	c.JSON(pkgerrors.ToHTTPStatus(err), Response{
		Data:  map[string]interface{}{},
		Error: pkgerrors.Describe(err),
	})
}

func (h *Handler) bind(c *gin.Context, req *Request, channelRequired bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.handleError(c, pkgerrors.ErrValidation.WithCause(err))
		return false
	}
	if channelRequired && req.Channel == "" {
		h.handleError(c, pkgerrors.ErrValidation.WithMessage("channel is required"))
		return false
	}
	return true
}

// Register godoc
// @Summary      Register a channel
// @Description  Create a new empty channel under the given name
// @Tags         broker
// @Accept       json
// @Produce      json
// @Param        request  body      Request  true  "Channel name"
// @Success      201      {object}  Response
// @Failure      400      {object}  Response
// @Failure      409      {object}  Response
// @Router       /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req Request
	if !h.bind(c, &req, true) {
		return
	}

	ctx := logging.WithChannel(c.Request.Context(), req.Channel)
	if err := h.Service.RegisterChannel(ctx, req.Channel); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Data:    map[string]interface{}{},
		Message: "channel " + req.Channel + " registered",
	})
}

// Send godoc
// @Summary      Publish a message
// @Description  Append a message with the given payload to the tail of the channel's ready queue
// @Tags         broker
// @Accept       json
// @Produce      json
// @Param        request  body      Request  true  "Channel name and payload"
// @Success      200      {object}  Response
// @Failure      400      {object}  Response
// @Failure      404      {object}  Response
// @Router       /send [post]
func (h *Handler) Send(c *gin.Context) {
	var req Request
	if !h.bind(c, &req, true) {
		return
	}

	ctx := logging.WithChannel(c.Request.Context(), req.Channel)
	id, err := h.Service.Publish(ctx, req.Channel, req.Payload)
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := req.Payload
	if data == nil {
		data = map[string]interface{}{}
	}

	c.JSON(http.StatusOK, Response{
		Data:      data,
		MessageID: id,
	})
}

// Read godoc
// @Summary      Consume a message
// @Description  Remove the head of the channel's ready queue and park it in the unacked set. An empty queue is a normal result, not an error.
// @Tags         broker
// @Accept       json
// @Produce      json
// @Param        request  body      Request  true  "Channel name"
// @Success      200      {object}  Response
// @Failure      400      {object}  Response
// @Failure      404      {object}  Response
// @Router       /read [post]
func (h *Handler) Read(c *gin.Context) {
	var req Request
	if !h.bind(c, &req, true) {
		return
	}

	ctx := logging.WithChannel(c.Request.Context(), req.Channel)
	msg, err := h.Service.Consume(ctx, req.Channel)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if msg == nil {
		c.JSON(http.StatusOK, Response{
			Data:    map[string]interface{}{},
			Message: "no messages in channel",
		})
		return
	}

	data := msg.Payload
	if data == nil {
		data = map[string]interface{}{}
	}

	c.JSON(http.StatusOK, Response{
		Data:      data,
		MessageID: msg.ID,
	})
}

// Confirm godoc
// @Summary      Acknowledge a message
// @Description  Permanently remove a delivered message from the channel's unacked set. An unknown id reports "message not found" without an error.
// @Tags         broker
// @Accept       json
// @Produce      json
// @Param        request  body      Request  true  "Channel name and message id"
// @Success      200      {object}  Response
// @Failure      400      {object}  Response
// @Failure      404      {object}  Response
// @Router       /confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	var req Request
	if !h.bind(c, &req, true) {
		return
	}
	if req.MessageID == "" {
		h.handleError(c, pkgerrors.ErrValidation.WithMessage("message_id is required"))
		return
	}

	ctx := logging.WithMessageID(logging.WithChannel(c.Request.Context(), req.Channel), req.MessageID)
	acked, err := h.Service.Acknowledge(ctx, req.Channel, req.MessageID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	message := "message confirmed"
	if !acked {
		message = "message not found"
	}

	c.JSON(http.StatusOK, Response{
		Data:      map[string]interface{}{},
		Message:   message,
		MessageID: req.MessageID,
	})
}

// Purge godoc
// @Summary      Purge a channel
// @Description  Discard every message in the channel, delivered or not
// @Tags         broker
// @Accept       json
// @Produce      json
// @Param        request  body      Request  true  "Channel name"
// @Success      200      {object}  Response
// @Failure      400      {object}  Response
// @Failure      404      {object}  Response
// @Router       /purge [post]
func (h *Handler) Purge(c *gin.Context) {
	var req Request
	if !h.bind(c, &req, true) {
		return
	}

	ctx := logging.WithChannel(c.Request.Context(), req.Channel)
	if err := h.Service.Purge(ctx, req.Channel); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Data:    map[string]interface{}{},
		Message: "channel " + req.Channel + " purged",
	})
}

// Stats godoc
// @Summary      Channel statistics
// @Description  Report ready/unacked/total counts for one channel, or for every channel when no name is given
// @Tags         broker
// @Accept       json
// @Produce      json
// @Param        channel  query     string   false  "Channel name"
// @Param        request  body      Request  false  "Channel name"
// @Success      200      {object}  Response
// @Failure      404      {object}  Response
// @Router       /stats [post]
func (h *Handler) Stats(c *gin.Context) {
	name := c.Query("channel")
	if name == "" && c.Request.Body != nil && c.Request.ContentLength > 0 {
		var req Request
		if !h.bind(c, &req, false) {
			return
		}
		name = req.Channel
	}

	ctx := logging.WithChannel(c.Request.Context(), name)
	stats, err := h.Service.Stats(ctx, name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	data := make(map[string]interface{}, len(stats))
	for channelName, st := range stats {
		data[channelName] = st
	}

	c.JSON(http.StatusOK, Response{
		Data: data,
	})
}

// UnknownOperation godoc
// @Summary      Unknown operation
// @Description  Fallback for unrecognized operation names
// @Tags         broker
// @Produce      json
// @Failure      404  {object}  Response
func (h *Handler) UnknownOperation(c *gin.Context) {
	h.handleError(c, pkgerrors.ErrUnknownOperation)
}
