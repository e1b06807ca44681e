package lookup

// Base returns the default lookup context. The tables mirror the accessors
// and field/collection methods a typical CMS rendering engine exposes; hosts
// with a richer type catalog layer their own data on top.
func Base() *Context {
	return New(Options{
		GlobalAccessors: []string{
			"Up", "Top", "Me", "Now", "CurrentMember", "SiteConfig", "i18n",
		},
		FieldMethods: map[string]string{
			"nice":           "Date",
			"long":           "Date",
			"ago":            "Date",
			"format":         "Date",
			"url":            "Image",
			"setwidth":       "Image",
			"setheight":      "Image",
			"croppedimage":   "Image",
			"firstsentence":  "Text",
			"summary":        "Text",
			"limitwordcount": "Text",
			"lower":          "Text",
			"upper":          "Text",
		},
		CollectionMethods: []string{
			"count", "first", "last", "even", "odd", "pos", "totalitems",
			"middlestring", "firstlast",
		},
		Rules: []Rule{
			{Pattern: "Date", Type: "Date"},
			{Pattern: "Time", Type: "Time"},
			{Pattern: "Image", Type: "Image"},
			{Pattern: "Photo", Type: "Image"},
			{Pattern: "Picture", Type: "Image"},
			{Pattern: "Logo", Type: "Image"},
			{Pattern: "Content", Type: "HTMLText"},
			{Pattern: "Description", Type: "Text"},
			{Pattern: "Email", Type: "Varchar"},
			{Pattern: "Phone", Type: "Varchar"},
			{Pattern: "Link", Type: "Varchar"},
			{Pattern: "Count", Type: "Int"},
			{Pattern: "Price", Type: "Currency"},
		},
		DefaultType: "Text",
		KnownTypes: []string{
			"Image", "File", "Member", "Group", "Page", "SiteTree",
		},
	})
}

// Page returns the base context extended with the navigation and hierarchy
// accessors available when rendering a content page.
func Page() *Context {
	return Base().WithGlobals(
		"Menu", "Level", "Breadcrumbs", "Children", "ChildrenOf", "Parent",
		"Navigator", "Comments",
	)
}

// Message returns the base context extended with the header fields available
// when rendering an outbound message.
func Message() *Context {
	return Base().WithGlobals(
		"To", "From", "Cc", "Bcc", "Subject", "ReplyTo", "RecipientName",
	)
}
