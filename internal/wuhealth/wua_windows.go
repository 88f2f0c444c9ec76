//go:build windows

package wuhealth

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// pendingSearchCriteria selects visible software updates not yet installed.
const pendingSearchCriteria = "IsInstalled=0 and Type='Software' and IsHidden=0"

// QueryPendingUpdates asks the Windows Update Agent for the current update
// backlog. The WUA search is synchronous and can take tens of seconds on a
// machine that has not scanned recently.
func QueryPendingUpdates() (PendingUpdates, error) {
	var pending PendingUpdates
	err := withUpdateSession(func(session *ole.IDispatch) error {
		return searchPending(session, &pending)
	})
	return pending, err
}

func withUpdateSession(action func(session *ole.IDispatch) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return fmt.Errorf("failed to initialize COM: %w", err)
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Microsoft.Update.Session")
	if err != nil {
		return fmt.Errorf("failed to create update session: %w", err)
	}
	defer unknown.Release()

	session, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("failed to query update session: %w", err)
	}
	defer session.Release()

	return action(session)
}

func searchPending(session *ole.IDispatch, pending *PendingUpdates) error {
	searcherVar, err := oleutil.CallMethod(session, "CreateUpdateSearcher")
	if err != nil {
		return fmt.Errorf("create searcher failed: %w", err)
	}
	defer searcherVar.Clear()

	searcher := searcherVar.ToIDispatch()
	if searcher == nil {
		return fmt.Errorf("create searcher failed: nil searcher")
	}
	defer searcher.Release()

	// Scan against the agent's cached results rather than forcing an
	// online sync. Older agents reject the property, which is fine.
	_, _ = oleutil.PutProperty(searcher, "Online", false)

	resultVar, err := oleutil.CallMethod(searcher, "Search", pendingSearchCriteria)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	defer resultVar.Clear()

	result := resultVar.ToIDispatch()
	if result == nil {
		return fmt.Errorf("search failed: nil result")
	}
	defer result.Release()

	updatesVar, err := oleutil.GetProperty(result, "Updates")
	if err != nil {
		return fmt.Errorf("updates collection failed: %w", err)
	}
	defer updatesVar.Clear()

	updates := updatesVar.ToIDispatch()
	if updates == nil {
		return fmt.Errorf("updates collection missing")
	}
	defer updates.Release()

	countVar, err := oleutil.GetProperty(updates, "Count")
	if err != nil {
		return fmt.Errorf("updates count failed: %w", err)
	}
	count := int(countVar.Val)
	countVar.Clear()

	for i := 0; i < count; i++ {
		itemVar, err := oleutil.CallMethod(updates, "Item", i)
		if err != nil {
			continue
		}
		update := itemVar.ToIDispatch()
		itemVar.Clear()
		if update == nil {
			continue
		}

		title := getStringProperty(update, "Title")
		security := isSecurityCategory(update)
		update.Release()

		pending.Total++
		if security {
			pending.Security++
		}
		if len(pending.Titles) < maxReportedTitles && title != "" {
			pending.Titles = append(pending.Titles, title)
		}
	}

	return nil
}

// isSecurityCategory reports whether the update's first WUA category is a
// security or critical classification.
func isSecurityCategory(update *ole.IDispatch) bool {
	catsVar, err := oleutil.GetProperty(update, "Categories")
	if err != nil {
		return false
	}
	defer catsVar.Clear()

	cats := catsVar.ToIDispatch()
	if cats == nil {
		return false
	}
	defer cats.Release()

	countVar, err := oleutil.GetProperty(cats, "Count")
	if err != nil || int(countVar.Val) == 0 {
		countVar.Clear()
		return false
	}
	countVar.Clear()

	itemVar, err := oleutil.CallMethod(cats, "Item", 0)
	if err != nil {
		return false
	}
	defer itemVar.Clear()

	cat := itemVar.ToIDispatch()
	if cat == nil {
		return false
	}
	defer cat.Release()

	name := strings.ToLower(getStringProperty(cat, "Name"))
	return strings.Contains(name, "security") || strings.Contains(name, "critical")
}

func getStringProperty(dispatch *ole.IDispatch, name string) string {
	value, err := oleutil.GetProperty(dispatch, name)
	if err != nil {
		return ""
	}
	defer value.Clear()
	return value.ToString()
}
