// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/system/authz"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

// SiteName is the display name used in page chrome.
const SiteName = "Student Engagement Platform"

// BaseVM contains common fields for all page view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot status messages queued before the last redirect
	Messages []flash.Message
}

// NewBaseVM creates a fully populated BaseVM for a page. It also pops any
// pending flash messages, which is why it needs the ResponseWriter.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	vm := BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  signedIn,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Messages:    flash.Pop(w, r),
	}
	if signedIn {
		vm.Role = string(role)
	}
	return vm
}
