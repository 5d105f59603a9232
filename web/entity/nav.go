package entity

import "github.com/partyhub/party-panel/model"

// NavItem is one entry of the top navigation.
type NavItem struct {
	Route string
	Title string // i18n key
}

// NavItems lists the navigation entries user may see. My parties is for
// actors only; administrators see every other entry.
func NavItems(user *model.User) []NavItem {
	if user == nil {
		return nil
	}

	entries := []struct {
		item NavItem
		perm model.Permission
	}{
		{NavItem{"dashboard", "menu.dashboard"}, model.AccessDashboard},
		{NavItem{"actors", "menu.actors"}, model.AccessActors},
		{NavItem{"parties", "menu.parties"}, model.AccessParties},
		{NavItem{"schedule", "menu.schedule"}, model.AccessSchedule},
	}

	items := make([]NavItem, 0, len(entries)+1)
	for _, e := range entries {
		if model.Can(user, e.perm) {
			items = append(items, e.item)
		}
	}
	if !user.IsAdmin() {
		items = append(items, NavItem{"my-parties", "menu.myParties"})
	}
	return items
}
