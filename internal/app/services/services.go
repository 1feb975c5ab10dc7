// Package services holds the form-session business logic.
//
// Services defined in this package:
// - SubmissionController: one visitor's form state, CAPTCHA gate and submission lifecycle
// - SessionStore: bounded set of SubmissionControllers keyed by session cookie
package services
