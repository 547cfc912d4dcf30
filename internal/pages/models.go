package pages

import prismpages "github.com/prismcms/prism/pages"

type Page = prismpages.Page

// HomepageSlug addresses the single page allowed to own the site root.
const HomepageSlug = prismpages.HomepageSlug
