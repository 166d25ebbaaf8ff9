// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package synth

import "pagecraft/internal/models"

// typeSections maps each site type to its main-content fragment. Every
// fragment root carries data-template="<type>".
var typeSections = map[models.SiteType]func(page) string{
	models.SiteTypePortfolio: portfolioSection,
	models.SiteTypeBlog:      blogSection,
	models.SiteTypeDocs:      docsSection,
	models.SiteTypeLanding:   landingSection,
	models.SiteTypeEcommerce: ecommerceSection,
	models.SiteTypeResume:    resumeSection,
	models.SiteTypeWiki:      wikiSection,
}

// featureSection is the optional style and body fragment for one feature.
// Body fragments carry data-feature="<id>" on their root element.
type featureSection struct {
	feature models.Feature
	style   string
	body    func(page) string
}

// featureSections lists body-level feature fragments in emission order.
// contact-form comes last so it always closes the main area.
var featureSections = []featureSection{
	{
		feature: models.FeatureBlogSupport,
		style:   "        .posts-feed article { border-left: 3px solid currentColor; padding-left: 1rem; margin-bottom: 1rem; }\n",
		body:    blogSupportSection,
	},
	{
		feature: models.FeatureSearch,
		style:   "        .site-search input { width: 100%; max-width: 420px; padding: 0.5rem; border: 1px solid #d1d5db; border-radius: 6px; }\n",
		body:    searchSection,
	},
	{
		feature: models.FeatureShoppingCart,
		style:   "        .cart-summary { position: sticky; bottom: 1rem; text-align: right; }\n",
		body:    cartSection,
	},
	{
		feature: models.FeatureUserAuth,
		style:   "        .auth-panel form { display: grid; gap: 0.5rem; max-width: 320px; }\n",
		body:    authSection,
	},
	{
		feature: models.FeatureCMS,
		style:   "        .cms-bar { font-size: 0.8rem; background: #fef3c7; padding: 0.4rem 1rem; margin: -20px -20px 1rem; }\n",
	},
	{
		feature: models.FeatureContactForm,
		style:   "        .contact-form form { display: grid; gap: 0.75rem; max-width: 480px; }\n        .contact-form input, .contact-form textarea { padding: 0.5rem; border: 1px solid #d1d5db; border-radius: 6px; font: inherit; }\n",
		body:    contactSection,
	},
}

func portfolioSection(p page) string {
	return `            <section class="projects" data-template="portfolio">
                <h2>My Work</h2>
                <div class="grid">
                    <article class="card project-card">
                        <h3>Project One</h3>
                        <p>A ` + p.Styling + ` case study showing how ` + p.Name + ` tackled a real design problem.</p>
                        <a href="#">View project</a>
                    </article>
                    <article class="card project-card">
                        <h3>Project Two</h3>
                        <p>An open source tool built and maintained in the open.</p>
                        <a href="#">View project</a>
                    </article>
                    <article class="card project-card">
                        <h3>Project Three</h3>
                        <p>Experiments, prototypes and side projects.</p>
                        <a href="#">View project</a>
                    </article>
                </div>
            </section>
            <section class="about">
                <h2>About</h2>
                <p>Replace this paragraph with a short introduction and a link to your resume.</p>
            </section>
`
}

func blogSection(p page) string {
	return `            <section class="post-list" data-template="blog">
                <h2>Latest Posts</h2>
                <ul class="posts">
                    <li>
                        <article>
                            <h3><a href="#hello-world">Hello, world</a></h3>
                            <time datetime="2026-01-05">January 5, 2026</time>
                            <p>The first post on ` + p.Name + `. Why I started writing, and what comes next.</p>
                        </article>
                    </li>
                    <li>
                        <article>
                            <h3><a href="#publishing">Publishing with GitHub Pages</a></h3>
                            <time datetime="2026-01-12">January 12, 2026</time>
                            <p>How this ` + p.Styling + ` blog is built and deployed on every push.</p>
                        </article>
                    </li>
                    <li>
                        <article>
                            <h3><a href="#notes">Weekly notes</a></h3>
                            <time datetime="2026-01-19">January 19, 2026</time>
                            <p>Links and small discoveries from the week.</p>
                        </article>
                    </li>
                </ul>
            </section>
`
}

func docsSection(p page) string {
	return `            <div class="docs-layout grid" data-template="docs">
                <nav class="docs-nav">
                    <ul>
                        <li><a href="#introduction">Introduction</a></li>
                        <li><a href="#installation">Installation</a></li>
                        <li><a href="#usage">Usage</a></li>
                        <li><a href="#reference">Reference</a></li>
                    </ul>
                </nav>
                <section id="introduction" class="docs-intro">
                    <h2>Introduction</h2>
                    <p>Welcome to the ` + p.Name + ` documentation. Start here to learn the core concepts.</p>
                    <h2 id="installation">Installation</h2>
                    <pre><code>git clone https://github.com/username/project.git
cd project</code></pre>
                    <h2 id="usage">Usage</h2>
                    <p>Describe the most common tasks in short, copyable steps.</p>
                </section>
            </div>
`
}

func landingSection(p page) string {
	return `            <section class="cta" data-template="landing">
                <h2>Meet ` + p.Name + `</h2>
                <p>Explain the problem you solve in one sentence, then show the way forward.</p>
                <a class="button" href="#get-started">Get Started</a>
                <div class="grid benefits">
                    <div class="card"><h3>Fast</h3><p>Static pages served from a global CDN.</p></div>
                    <div class="card"><h3>Free</h3><p>No hosting bill, ever.</p></div>
                    <div class="card"><h3>Simple</h3><p>Push to deploy, nothing else to run.</p></div>
                </div>
            </section>
`
}

func ecommerceSection(p page) string {
	return `            <section class="products" data-template="ecommerce">
                <h2>Featured Products</h2>
                <div class="grid">
                    <article class="card product-card">
                        <h3>Classic Tee</h3>
                        <p class="price">$24.00</p>
                        <button type="button">Add to cart</button>
                    </article>
                    <article class="card product-card">
                        <h3>Canvas Tote</h3>
                        <p class="price">$18.00</p>
                        <button type="button">Add to cart</button>
                    </article>
                    <article class="card product-card">
                        <h3>Sticker Pack</h3>
                        <p class="price">$6.00</p>
                        <button type="button">Add to cart</button>
                    </article>
                </div>
                <p>All ` + p.Name + ` products ship within three business days.</p>
            </section>
`
}

func resumeSection(p page) string {
	return `            <section class="experience" data-template="resume">
                <h2>Experience</h2>
                <article class="entry">
                    <h3>Senior Engineer, Example Corp</h3>
                    <p class="period">2023 - Present</p>
                    <p>Led the migration of customer-facing sites to static hosting.</p>
                </article>
                <article class="entry">
                    <h3>Developer, Startup Inc</h3>
                    <p class="period">2020 - 2023</p>
                    <p>Built and shipped the first three versions of the product.</p>
                </article>
                <h2>Skills</h2>
                <p>HTML, CSS, JavaScript, accessibility, ` + p.Styling + ` interface design.</p>
            </section>
`
}

func wikiSection(p page) string {
	return `            <div class="wiki-layout grid" data-template="wiki">
                <nav class="wiki-nav">
                    <h2>Pages</h2>
                    <ul>
                        <li><a href="#main-page">Main Page</a></li>
                        <li><a href="#getting-started">Getting Started</a></li>
                        <li><a href="#glossary">Glossary</a></li>
                    </ul>
                </nav>
                <article id="main-page" class="wiki-article">
                    <h2>Main Page</h2>
                    <p>Welcome to the ` + p.Name + ` wiki. Every page links to related topics so knowledge stays connected.</p>
                    <h3 id="getting-started">Getting Started</h3>
                    <p>Create a new page by adding an HTML file and linking it from here.</p>
                </article>
            </div>
`
}

func blogSupportSection(p page) string {
	return `            <section class="posts-feed" data-feature="blog-support">
                <h2>From the Blog</h2>
                <article>
                    <h3><a href="posts/first-post.html">Writing posts in Markdown</a></h3>
                    <p>Add Markdown files under <code>_posts/</code> and GitHub Pages will build them with Jekyll.</p>
                </article>
            </section>
`
}

func searchSection(p page) string {
	return `            <form class="site-search" role="search" data-feature="search" onsubmit="return false">
                <label for="site-search-input">Search ` + p.Name + `</label>
                <input id="site-search-input" type="search" name="q" placeholder="Search...">
            </form>
`
}

func cartSection(p page) string {
	return `            <aside class="cart-summary" data-feature="shopping-cart">
                <span class="cart-count">0 items</span>
                <a class="button" href="#checkout">Checkout</a>
            </aside>
`
}

func authSection(p page) string {
	return `            <section class="auth-panel" data-feature="user-auth">
                <h2>Sign in</h2>
                <form action="#" method="post">
                    <input type="email" name="email" placeholder="Email" autocomplete="email" required>
                    <input type="password" name="password" placeholder="Password" autocomplete="current-password" required>
                    <button type="submit">Sign in</button>
                </form>
            </section>
`
}

func cmsBar(p page) string {
	return `    <div class="cms-bar" data-feature="cms">
        Content for ` + p.Name + ` is managed in a headless CMS. <a href="#edit">Edit this page</a>
    </div>
`
}

func contactSection(p page) string {
	return `            <section class="contact-form" data-feature="contact-form">
                <h2>Contact</h2>
                <form action="#" method="post">
                    <input type="text" name="name" placeholder="Your name" required>
                    <input type="email" name="email" placeholder="Your email" required>
                    <textarea name="message" rows="5" placeholder="Your message" required></textarea>
                    <button type="submit">Send</button>
                </form>
            </section>
`
}
