package search

// JavaScript fallbacks for interactions that selector-based driving can
// miss when the page markup shifts.

// hasFollowUpInputScript reports whether any visible free-form input
// exists besides the main query box.
const hasFollowUpInputScript = `
() => {
    const textareas = document.querySelectorAll('textarea');
    for (const ta of textareas) {
        if (ta.name === 'q') continue;
        if (ta.offsetParent !== null) return true;
    }
    const editables = document.querySelectorAll('[contenteditable="true"]');
    for (const el of editables) {
        if (el.offsetParent !== null) return true;
    }
    return false;
}`

// submitFollowUpScript fills the first visible follow-up input with the
// query and submits it, preferring the enclosing form's submit button and
// falling back to an Enter key event.
const submitFollowUpScript = `
(query) => {
    const textareas = document.querySelectorAll('textarea');
    for (const ta of textareas) {
        if (ta.name === 'q') continue;
        if (ta.offsetParent !== null) {
            ta.value = query;
            ta.dispatchEvent(new Event('input', { bubbles: true }));
            const form = ta.closest('form');
            if (form) {
                const submitBtn = form.querySelector('button[type="submit"], button:not([type])');
                if (submitBtn) {
                    submitBtn.click();
                    return true;
                }
            }
            ta.dispatchEvent(new KeyboardEvent('keydown', { key: 'Enter', keyCode: 13, bubbles: true }));
            return true;
        }
    }
    return false;
}`

// clickConsentScript clicks the "accept all" button of the cookie consent
// dialog when one is shown, across the supported languages.
const clickConsentScript = `
() => {
    const labels = ['全部接受', 'Accept all', 'すべて同意', '모두 수락', 'Alle akzeptieren', 'Tout accepter'];
    const buttons = document.querySelectorAll('button');
    for (const btn of buttons) {
        const text = btn.textContent || '';
        if (labels.some(l => text.includes(l))) {
            btn.click();
            return true;
        }
    }
    return false;
}`
