package sections

import prismsections "github.com/prismcms/prism/sections"

type (
	Template = prismsections.Template
	Instance = prismsections.Instance
)
