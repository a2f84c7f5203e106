// api/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/logger"
	"github.com/Annany2002/collecta-backend/internal/media"
)

var (
	customLog = logger.NewLogger()
)

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// bindBody decodes a JSON, urlencoded or multipart body into obj. Failures are attached
// as bind errors so ErrorHandler answers 400.
func bindBody(c *gin.Context, obj any) bool {
	var err error
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm:
		if err = c.ShouldBindWith(obj, binding.FormMultipart); err == nil {
			dropBlankNumbers(c, obj)
		}
	case binding.MIMEPOSTForm:
		if err = c.ShouldBindWith(obj, binding.Form); err == nil {
			dropBlankNumbers(c, obj)
		}
	default:
		err = c.ShouldBindJSON(obj)
	}
	if err != nil {
		customLog.Warnf("Handler: Binding error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// formImage validates the optional "image" file of a multipart request.
// Requests of any other content type carry no image.
func formImage(c *gin.Context, maxBytes int64) (*media.Image, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		customLog.Warnf("Handler: Could not read uploaded image: %v", err)
		return nil, domain.Invalid("image", "could not read uploaded file")
	}
	return media.ReadImage(fh, maxBytes)
}

// dropBlankNumbers resets numeric pointer fields whose form value was sent blank. Form
// binding turns "" into 0 for them, and a blank field means the value is absent.
func dropBlankNumbers(c *gin.Context, obj any) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Pointer || f.IsNil() {
			continue
		}
		switch f.Type().Elem().Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64:
		default:
			continue
		}
		key, _, _ := strings.Cut(t.Field(i).Tag.Get("form"), ",")
		if key == "" || key == "-" {
			continue
		}
		if strings.TrimSpace(c.PostForm(key)) == "" {
			f.Set(reflect.Zero(f.Type()))
		}
	}
}

// bindRating reads the "rating" field of a rating request. The field must be present;
// null (or a blank form value) clears the rating.
func bindRating(c *gin.Context) (*int, bool) {
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm:
		raw, ok := c.GetPostForm("rating")
		if !ok {
			_ = c.Error(domain.Invalid("rating", "is required, use null to clear"))
			return nil, false
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, true
		}
		rating, err := strconv.Atoi(raw)
		if err != nil {
			_ = c.Error(domain.Invalid("rating", "must be an integer from 0 to 5 or null"))
			return nil, false
		}
		return &rating, true
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		customLog.Warnf("Handler: Binding error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return nil, false
	}
	raw, ok := body["rating"]
	if !ok {
		_ = c.Error(domain.Invalid("rating", "is required, use null to clear"))
		return nil, false
	}
	var rating *int
	if err := json.Unmarshal(raw, &rating); err != nil {
		_ = c.Error(domain.Invalid("rating", "must be an integer from 0 to 5 or null"))
		return nil, false
	}
	return rating, true
}

// listOptions parses limit, offset, sort and order for one resource.
func listOptions(c *gin.Context, sortable core.Sortable) (domain.ListOptions, error) {
	return core.ParseListQueryOptions(c.Request.URL.Query(), sortable)
}
