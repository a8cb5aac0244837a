package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates a service error into a problem. It reports false for
// errors it does not recognize.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem+json bodies. Errors are offered to the mappers in
// registration order; whatever none of them claims is reported as a 500.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder builds a responder over mappers. Nil mappers are skipped.
func NewResponder(mappers ...ErrorMapper) *Responder {
	r := &Responder{}
	for _, m := range mappers {
		if m != nil {
			r.mappers = append(r.mappers, m)
		}
	}
	return r
}

// Problem resolves err to the problem it is reported as. A ProblemDetail in
// the chain wins over the mappers.
func (r *Responder) Problem(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	for _, m := range r.mappers {
		if p, ok := m(err); ok {
			return p
		}
	}
	return ErrInternal.WithDetail(err.Error())
}

// Respond aborts the request with problem. Instance defaults to the request
// path and the "error" member is always filled, since storefront and larek
// clients read only that member.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	problem.Message = problem.ErrorMessage()
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and responds with the result.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Problem(err))
}

// NotFound reports a missing product, basket item or form.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// BadRequest reports a body that could not be decoded.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ValidationFailed reports per-field errors under the "fields" extension.
func (r *Responder) ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	r.Respond(c, NewValidationProblem(fieldErrors))
}
